// SPDX-License-Identifier: MPL-2.0

package hwmodule_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/halmod/halmod/pkg/hwmodule"
)

func TestCandidatePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		root    string
		id      string
		variant string
		ext     string
		want    string
	}{
		{name: "board variant", root: "/lib/hw", id: "sensors", variant: "board7", ext: "so", want: "/lib/hw/sensors.board7.so"},
		{name: "default variant", root: "/system/lib/hw", id: "led", variant: "default", ext: "so", want: "/system/lib/hw/led.default.so"},
		{name: "trailing slash on root", root: "/lib/hw/", id: "gps", variant: "ARMV6", ext: "so", want: "/lib/hw/gps.ARMV6.so"},
		{name: "dotted extension", root: "/vendor/lib", id: "audio", variant: "default", ext: ".dylib", want: "/vendor/lib/audio.default.dylib"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := hwmodule.CandidatePath(tt.root, tt.id, tt.variant, tt.ext)
			if err != nil {
				t.Fatalf("CandidatePath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CandidatePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCandidatePath_TooLong(t *testing.T) {
	t.Parallel()

	// "/r/" + id + ".v.so" lands exactly on MaxPathLen, which leaves no room for NUL.
	id := strings.Repeat("x", hwmodule.MaxPathLen-len("/r/.v.so"))
	_, err := hwmodule.CandidatePath("/r", id, "v", "so")
	if !errors.Is(err, hwmodule.ErrPathTooLong) {
		t.Fatalf("CandidatePath() error = %v, want ErrPathTooLong", err)
	}
	var tooLong *hwmodule.PathTooLongError
	if !errors.As(err, &tooLong) {
		t.Fatalf("error should be *PathTooLongError, got %T", err)
	}
	if tooLong.Limit != hwmodule.MaxPathLen {
		t.Errorf("Limit = %d, want %d", tooLong.Limit, hwmodule.MaxPathLen)
	}

	// One byte shorter fits.
	path, err := hwmodule.CandidatePath("/r", id[1:], "v", "so")
	if err != nil {
		t.Fatalf("CandidatePath() at limit-1 error = %v", err)
	}
	if len(path) != hwmodule.MaxPathLen-1 {
		t.Errorf("len(path) = %d, want %d", len(path), hwmodule.MaxPathLen-1)
	}
}

func TestValidateModuleID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id      string
		wantErr bool
	}{
		{id: "sensors"},
		{id: "audio_policy"},
		{id: "", wantErr: true},
		{id: "   ", wantErr: true},
		{id: "../etc/passwd", wantErr: true},
		{id: "a\x00b", wantErr: true},
	}

	for _, tt := range tests {
		err := hwmodule.ValidateModuleID(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateModuleID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, hwmodule.ErrInvalidModuleID) {
			t.Errorf("ValidateModuleID(%q) error does not wrap ErrInvalidModuleID", tt.id)
		}
	}
}
