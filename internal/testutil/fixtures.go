package testutil

// SampleConfig is a small document mixing legacy tuples and objects, built
// from the default onnx-web model sources.
const SampleConfig = `
diffusion:
  - [stable-diffusion-onnx-v1-5, runwayml/stable-diffusion-v1-5]
  - name: stable-diffusion-onnx-v2-1
    source: stabilityai/stable-diffusion-2-1
    format: safetensors
    version: v2.1
    pipeline: txt2img
correction:
  - [correction-gfpgan-v1-3, "https://github.com/TencentARC/GFPGAN/releases/download/v1.3.0/GFPGANv1.3.pth", pth]
upscaling:
  - [upscaling-real-esrgan-x4-plus, "https://github.com/xinntao/Real-ESRGAN/releases/download/v0.1.0/RealESRGAN_x4plus.pth", 4]
networks:
  - name: cubex
    source: sd-concepts-library/cubex
    type: inversion
    model: concept
sources:
  - [vae-ft-mse, "https://huggingface.co/stabilityai/sd-vae-ft-mse", vae]
strings:
  en:
    errors:
      server:
        unreachable: "Server Error: could not reach the API"
    model:
      stable-diffusion-onnx-v1-5: Stable Diffusion v1.5
  de:
    model:
      stable-diffusion-onnx-v1-5: Stable Diffusion v1.5 (de)
`

// InvalidConfig has one missing required field and one unknown key.
const InvalidConfig = `
foo: 1
upscaling:
  - name: x
    source: y
`

// DuplicateConfig only has warning-level issues.
const DuplicateConfig = `
diffusion:
  - {name: a, source: s1}
  - {name: a, source: s2}
`
