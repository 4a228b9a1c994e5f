// SPDX-License-Identifier: MPL-2.0

// Package hwmodule locates and loads hardware module implementations shipped as
// native shared libraries.
//
// A module is identified by a short logical name (for example "sensors" or
// "gralloc"). Implementations for a given device live side by side in a single
// library directory and are named after a configuration-derived variant:
//
//	/system/lib/hw/sensors.trout.so    // ro.product.board
//	/system/lib/hw/sensors.ARMV6.so    // ro.arch
//	/system/lib/hw/sensors.default.so  // fallback
//
// The Resolver walks the ordered VariantKeys, asks a PropertySource for each
// key's value, builds the candidate path and hands it to the Loader. The first
// candidate that opens, exports the HMI descriptor symbol and reports the
// requested id wins. Every failed candidate is closed before the next one is
// tried, so a failed resolution never leaves a library mapped.
//
// # Usage
//
//	resolver, err := hwmodule.NewResolver(hwmodule.ResolverOptions{
//	    Linker:     dl.NewLinker(),
//	    Properties: props,
//	})
//	if err != nil {
//	    return err
//	}
//	mod, err := resolver.GetModule("sensors")
//	if err != nil {
//	    return err
//	}
//	defer mod.Close()
//	fmt.Println(mod.Descriptor().Name)
package hwmodule
