package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// CheckpointMUS is the MUS serializer for Checkpoint values stored in the
// checkpoint repository. Timestamps are encoded as Unix microseconds.
var CheckpointMUS = checkpointMUS{}

type checkpointMUS struct{}

func (checkpointMUS) Marshal(v Checkpoint, bs []byte) (n int) {
	n = ord.String.Marshal(v.StatusFilter, bs)
	n += varint.Int64.Marshal(v.LastUpdatedAt.UnixMicro(), bs[n:])
	n += varint.Int.Marshal(v.TicketsIndexed, bs[n:])
	n += varint.Int64.Marshal(v.UpdatedAt.UnixMicro(), bs[n:])
	return
}

func (checkpointMUS) Unmarshal(bs []byte) (v Checkpoint, n int, err error) {
	var n1 int
	v.StatusFilter, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}

	var lastUpdated int64
	lastUpdated, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.LastUpdatedAt = time.UnixMicro(lastUpdated).UTC()

	v.TicketsIndexed, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	var updated int64
	updated, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt = time.UnixMicro(updated).UTC()
	return
}

func (checkpointMUS) Size(v Checkpoint) (size int) {
	size = ord.String.Size(v.StatusFilter)
	size += varint.Int64.Size(v.LastUpdatedAt.UnixMicro())
	size += varint.Int.Size(v.TicketsIndexed)
	size += varint.Int64.Size(v.UpdatedAt.UnixMicro())
	return
}
