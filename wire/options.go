package wire

// DefaultFunc is called when Encode encounters a value of a type it does not
// otherwise recognize, giving the caller a chance to substitute something
// encodable (spec section 5, "Unencodable values"). It is called with the
// original value and must return a replacement value (of a type Encode does
// recognize) or an error.
type DefaultFunc func(value any) (any, error)

// EncodeOption configures a single Encode call.
type EncodeOption interface {
	apply(*encodeConfig)
}

type encodeConfig struct {
	defaultFn DefaultFunc
}

type encodeOptionFunc func(*encodeConfig)

func (f encodeOptionFunc) apply(c *encodeConfig) { f(c) }

// WithDefault installs a fallback for values Encode would otherwise reject
// with errs.ErrUnencodable.
func WithDefault(fn DefaultFunc) EncodeOption {
	return encodeOptionFunc(func(c *encodeConfig) {
		c.defaultFn = fn
	})
}
