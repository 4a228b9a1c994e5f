// SPDX-License-Identifier: MPL-2.0

package hwmodule_test

import (
	"errors"
	"testing"

	"github.com/halmod/halmod/internal/testutil"
	"github.com/halmod/halmod/pkg/hwmodule"
)

const sensorsPath = "/lib/hw/sensors.board7.so"

func TestLoader_Load_Success(t *testing.T) {
	t.Parallel()

	linker := testutil.NewFakeLinker().AddModule(sensorsPath, "sensors")
	loader := hwmodule.NewLoader(linker, nil)

	mod, err := loader.Load("sensors", sensorsPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	t.Cleanup(func() { _ = mod.Close() })

	if got := mod.Descriptor().ID; got != "sensors" {
		t.Errorf("Descriptor().ID = %q, want %q", got, "sensors")
	}
	if got := mod.Path(); got != sensorsPath {
		t.Errorf("Path() = %q, want %q", got, sensorsPath)
	}
	if got := linker.Outstanding(); got != 1 {
		t.Errorf("Outstanding() = %d, want 1 (caller owns the handle)", got)
	}
}

func TestLoader_Load_Failures(t *testing.T) {
	t.Parallel()

	openErr := errors.New("dlopen: invalid ELF header")

	tests := []struct {
		name     string
		module   *testutil.FakeModule
		sentinel error
		wantOpen int
	}{
		{
			name:     "missing file",
			module:   nil,
			sentinel: hwmodule.ErrLoad,
		},
		{
			name:     "open error",
			module:   &testutil.FakeModule{OpenErr: openErr},
			sentinel: hwmodule.ErrLoad,
		},
		{
			name:     "missing descriptor",
			module:   &testutil.FakeModule{},
			sentinel: hwmodule.ErrMissingDescriptor,
			wantOpen: 1,
		},
		{
			name:     "identity mismatch",
			module:   &testutil.FakeModule{Descriptor: &hwmodule.Descriptor{ID: "lights"}},
			sentinel: hwmodule.ErrIdentityMismatch,
			wantOpen: 1,
		},
		{
			name:     "identity mismatch with failing close",
			module:   &testutil.FakeModule{Descriptor: &hwmodule.Descriptor{ID: "lights"}, CloseErr: errors.New("dlclose failed")},
			sentinel: hwmodule.ErrIdentityMismatch,
			wantOpen: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			linker := testutil.NewFakeLinker()
			if tt.module != nil {
				linker.Add(sensorsPath, *tt.module)
			}
			loader := hwmodule.NewLoader(linker, nil)

			mod, err := loader.Load("sensors", sensorsPath)
			if mod != nil {
				t.Fatal("Load() returned a module together with an error")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("Load() error = %v, want %v", err, tt.sentinel)
			}
			if got := linker.Opens(); got != tt.wantOpen {
				t.Errorf("Opens() = %d, want %d", got, tt.wantOpen)
			}
			if got := linker.Outstanding(); got != 0 {
				t.Errorf("Outstanding() = %d after failure, want 0", got)
			}
		})
	}
}

func TestLoader_Load_ErrorDetails(t *testing.T) {
	t.Parallel()

	openErr := errors.New("undefined symbol: hw_get_vendor")
	linker := testutil.NewFakeLinker().
		Add("/a.so", testutil.FakeModule{OpenErr: openErr}).
		Add("/b.so", testutil.FakeModule{}).
		Add("/c.so", testutil.FakeModule{Descriptor: &hwmodule.Descriptor{ID: "lights"}})
	loader := hwmodule.NewLoader(linker, nil)

	_, err := loader.Load("sensors", "/a.so")
	var loadErr *hwmodule.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error should be *LoadError, got %T", err)
	}
	if !errors.Is(err, openErr) {
		t.Error("LoadError should wrap the linker diagnostic")
	}

	_, err = loader.Load("sensors", "/b.so")
	var missing *hwmodule.MissingDescriptorError
	if !errors.As(err, &missing) {
		t.Fatalf("error should be *MissingDescriptorError, got %T", err)
	}
	if missing.Symbol != hwmodule.InfoSymbol {
		t.Errorf("Symbol = %q, want %q", missing.Symbol, hwmodule.InfoSymbol)
	}

	_, err = loader.Load("sensors", "/c.so")
	var mismatch *hwmodule.IdentityMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error should be *IdentityMismatchError, got %T", err)
	}
	if mismatch.Want != "sensors" || mismatch.Got != "lights" {
		t.Errorf("mismatch = %+v, want Want=sensors Got=lights", mismatch)
	}
}

func TestLoader_Load_InvalidID(t *testing.T) {
	t.Parallel()

	linker := testutil.NewFakeLinker()
	loader := hwmodule.NewLoader(linker, nil)

	_, err := loader.Load("", sensorsPath)
	if !errors.Is(err, hwmodule.ErrInvalidModuleID) {
		t.Fatalf("Load(\"\") error = %v, want ErrInvalidModuleID", err)
	}
	if calls := linker.Calls(); len(calls) != 0 {
		t.Errorf("linker.Open called %d times for an invalid id", len(calls))
	}
}
