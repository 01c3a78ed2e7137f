package view

// RenderFile renders the template at path with vars.
func RenderFile(
	path string,
	vars map[string]any,
	opts ...Option,
) (string, error) {
	vw, err := New(path, vars, opts...)
	if err != nil {
		return "", err
	}

	return vw.Render(nil)
}

// RenderString renders template text with vars.
func RenderString(
	text string,
	vars map[string]any,
	opts ...Option,
) (string, error) {
	return NewString(text, vars, opts...).Render(nil)
}
