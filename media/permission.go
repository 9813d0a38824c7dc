package media

import "context"

// StaticAuthority is a permission authority with a fixed decision. CLI and
// server runs are pre-granted; the denied form exists for tests and for
// deployments that want the pipelines locked out.
type StaticAuthority struct {
	Granted bool
}

func (a StaticAuthority) Request(context.Context) (bool, error) {
	return a.Granted, nil
}
