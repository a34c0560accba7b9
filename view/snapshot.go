package view

import (
	"go.uber.org/zap"

	cerrors "github.com/fzft/go-collections/errors"
	"github.com/fzft/go-collections/internal/snapshot"
	"github.com/fzft/go-collections/log"
)

// MarshalEnvelope wraps a delegate snapshot in the unmodifiable view header.
func MarshalEnvelope(kind Kind, delegate []byte) []byte {
	w := snapshot.NewWriter(snapshot.TagUnmodifiable)
	w.Byte(byte(kind))
	w.Raw(delegate)
	return w.Bytes()
}

// OpenEnvelope checks the view header and returns the recorded kind and the
// delegate snapshot.
func OpenEnvelope(data []byte, op string) (Kind, []byte, error) {
	r, err := snapshot.NewReader(data, snapshot.TagUnmodifiable, op)
	if err != nil {
		log.Logger.Debug("view snapshot rejected", zap.String("op", op), zap.Error(err))
		return 0, nil, err
	}
	b, err := r.Byte()
	if err != nil {
		return 0, nil, err
	}
	kind := Kind(b)
	if kind > KindList {
		return 0, nil, cerrors.Deserialization(op, "unknown view kind %#02x", b)
	}
	return kind, r.Rest(), nil
}
