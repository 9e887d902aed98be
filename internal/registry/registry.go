// Package registry tracks the StreamDecoder that belongs to each connected peer.
//
// A StreamDecoder is single-owner, single-threaded: it never multiplexes more than one peer.
// What a server accepting many peer connections still needs is somewhere to find the decoder
// for a given peer (by device ID or connection address) from a goroutine other than the one
// that owns it, typically to look it up on a subsequent read or to tear it down on disconnect.
package registry

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/sumika-fab/secscore/hsms"
)

// Registry is a concurrency-safe map from peer identity to its StreamDecoder.
type Registry struct {
	decoders *xsync.MapOf[string, *hsms.StreamDecoder]
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{decoders: xsync.NewMapOf[string, *hsms.StreamDecoder]()}
}

// Get returns the decoder registered for peerID, if any.
func (r *Registry) Get(peerID string) (*hsms.StreamDecoder, bool) {
	return r.decoders.Load(peerID)
}

// GetOrCreate returns the decoder registered for peerID, creating one with newDecoder and
// registering it if this is the peer's first contact.
func (r *Registry) GetOrCreate(peerID string, newDecoder func() *hsms.StreamDecoder) *hsms.StreamDecoder {
	decoder, _ := r.decoders.LoadOrCompute(peerID, newDecoder)
	return decoder
}

// Remove drops the decoder registered for peerID, e.g. on disconnect.
func (r *Registry) Remove(peerID string) {
	r.decoders.Delete(peerID)
}

// Len returns the number of peers currently registered.
func (r *Registry) Len() int {
	return r.decoders.Size()
}

// Range calls fn for each registered peer, in no particular order. Range stops early if fn
// returns false. fn must not call Get/GetOrCreate/Remove on the same Registry.
func (r *Registry) Range(fn func(peerID string, decoder *hsms.StreamDecoder) bool) {
	r.decoders.Range(fn)
}
