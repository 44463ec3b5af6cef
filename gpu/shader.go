// Package gpu creates the transfer-function compositor shader on a
// wgpu HAL device. The engine owns device and swapchain lifecycle; this
// package only prepares the shader module the engine binds colormap,
// blend-map, and pattern-atlas textures to.
package gpu

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/visloom/loom"
)

// SPIRVWords converts SPIR-V bytes to the uint32 word slice HAL expects.
// SPIR-V is little-endian 32-bit words.
func SPIRVWords(spirv []byte) ([]uint32, error) {
	if len(spirv)%4 != 0 {
		return nil, fmt.Errorf("spir-v byte length %d is not word-aligned", len(spirv))
	}
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = uint32(spirv[i*4]) |
			uint32(spirv[i*4+1])<<8 |
			uint32(spirv[i*4+2])<<16 |
			uint32(spirv[i*4+3])<<24
	}
	return words, nil
}

// NewTransferShaderModule compiles the compositor shader from WGSL and
// creates a HAL shader module on the device.
func NewTransferShaderModule(device hal.Device, label string) (hal.ShaderModule, error) {
	spirv, err := loom.CompileTransferShader()
	if err != nil {
		return nil, err
	}
	words, err := SPIRVWords(spirv)
	if err != nil {
		return nil, err
	}
	loom.Logger().Debug("creating transfer shader module", "label", label, "words", len(words))
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: words,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create transfer shader module: %w", err)
	}
	return module, nil
}
