package netrand

import "fmt"

// An ErrorHandler receives fetch failures and pool-exhaustion warnings.
type ErrorHandler func(error)

// ErrUnknownSource indicates a source name with no registered fetcher.
type ErrUnknownSource struct {
	Name string
}

func (e ErrUnknownSource) Error() string {
	return fmt.Sprintf("Unknown random source: source=%s", e.Name)
}

// ErrBadRange indicates an invalid [min, max] generator range.
type ErrBadRange struct {
	Min uint64
	Max uint64
}

func (e ErrBadRange) Error() string {
	return fmt.Sprintf("Bad generator range: min=%d: max=%d", e.Min, e.Max)
}

// ErrBadCount indicates an invalid count passed to Get.
type ErrBadCount struct {
	Count int
}

func (e ErrBadCount) Error() string {
	return fmt.Sprintf("Bad value count: count=%d", e.Count)
}

// ErrInsufficient indicates a pool that could not be recharged to the
// requested size after one fetch attempt.
type ErrInsufficient struct {
	Source string
	Need   int
	Have   int
}

func (e ErrInsufficient) Error() string {
	return fmt.Sprintf("Insufficient randomness: source=%s: need=%d: have=%d", e.Source, e.Need, e.Have)
}
