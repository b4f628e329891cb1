package ports

// ExeLocator resolves the path to an external executable, honoring the
// documented preference order (bin dir candidates, then PATH).
type ExeLocator interface {
	Locate() (string, error)
}
