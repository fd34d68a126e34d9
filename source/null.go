package source

type null struct{}

var nullSource Source = null{}

// Null returns the absent sentinel.
func Null() Source {
	return nullSource
}

func (null) IsNull() bool                { return true }
func (null) Shape() (Shape, error)       { return 0, ErrNullSource }
func (null) Name(string) (Source, error) { return nil, ErrNullSource }
func (null) Index(int) (Source, error)   { return nil, ErrNullSource }
func (null) Value() (any, error)         { return nil, ErrNullSource }
func (null) Keys() ([]string, error)     { return nil, ErrNullSource }
func (null) String() string              { return "<null>" }
