package translator

import (
	"context"
	"fmt"

	gst "github.com/richinsley/goshadertranslator"
)

// Translator converts shadertoy-style WebGL2 fragment shaders to desktop
// GLSL 4.10.
type Translator struct {
	st *gst.ShaderTranslator
}

// New starts the translator runtime. It is slow to create; build one per
// process.
func New(ctx context.Context) (*Translator, error) {
	st, err := gst.NewShaderTranslator(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start shader translator: %w", err)
	}
	return &Translator{st: st}, nil
}

// TranslateFragment returns the translated code and a map from each
// translated uniform name to its original name.
func (t *Translator) TranslateFragment(source string) (string, map[string]string, error) {
	sh, err := t.st.TranslateShader(source, "fragment", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return "", nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}
	names := make(map[string]string, len(sh.Variables))
	for name, v := range sh.Variables {
		names[v.MappedName] = name
	}
	return sh.Code, names, nil
}
