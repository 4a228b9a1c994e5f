// SPDX-License-Identifier: MPL-2.0

package dl

import (
	"errors"
	"testing"

	"github.com/halmod/halmod/pkg/hwmodule"
)

func TestDescriptorFromSymbol(t *testing.T) {
	t.Parallel()

	desc := &hwmodule.Descriptor{ID: "sensors", Name: "Sensors"}
	var nilDesc *hwmodule.Descriptor
	notDesc := 42

	tests := []struct {
		name    string
		sym     any
		wantID  string
		wantErr bool
	}{
		{name: "pointer to descriptor", sym: desc, wantID: "sensors"},
		{name: "pointer to pointer", sym: &desc, wantID: "sensors"},
		{name: "nil pointer", sym: nilDesc, wantErr: true},
		{name: "pointer to nil pointer", sym: &nilDesc, wantErr: true},
		{name: "wrong type", sym: &notDesc, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := descriptorFromSymbol("/lib/hw/sensors.default.so", hwmodule.InfoSymbol, tt.sym)
			if (err != nil) != tt.wantErr {
				t.Fatalf("descriptorFromSymbol() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", got.ID, tt.wantID)
			}
		})
	}
}

func TestDescriptorFromSymbol_Copies(t *testing.T) {
	t.Parallel()

	desc := &hwmodule.Descriptor{ID: "sensors"}
	got, err := descriptorFromSymbol("p", hwmodule.InfoSymbol, desc)
	if err != nil {
		t.Fatalf("descriptorFromSymbol() error = %v", err)
	}
	got.ID = "changed"
	if desc.ID != "sensors" {
		t.Error("descriptorFromSymbol() returned the plugin's own variable")
	}
}

func TestPluginLibrary_Closed(t *testing.T) {
	t.Parallel()

	lib := &pluginLibrary{
		path: "p",
		lookup: func(string) (any, error) {
			return &hwmodule.Descriptor{ID: "sensors"}, nil
		},
	}
	if _, err := lib.Descriptor(hwmodule.InfoSymbol); err != nil {
		t.Fatalf("Descriptor() error = %v", err)
	}
	if err := lib.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := lib.Descriptor(hwmodule.InfoSymbol); !errors.Is(err, ErrLibraryClosed) {
		t.Errorf("Descriptor() after Close error = %v, want ErrLibraryClosed", err)
	}
}
