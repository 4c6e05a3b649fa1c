package interfaces

// -----------------------------------------------------------------------------
// IGateStatus exposes the processing gate read-only.
// -----------------------------------------------------------------------------

type IGateStatus interface {
	Busy() bool
}
