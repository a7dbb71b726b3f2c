package session

import (
	"time"

	"github.com/mrlm-net/simbridge/pkg/translate"
	"github.com/mrlm-net/simbridge/pkg/types"
	"github.com/mrlm-net/simbridge/pkg/wire"
)

// Tick evaluates every active data request once, in order, returning the
// SimObjectData frames ready to send. Finished (Once/Never) requests are
// removed from the session's active set after this call.
func (s *Session) Tick() [][]byte {
	var frames [][]byte
	finished := map[uint32]bool{}

	for _, req := range s.activeDataRequests {
		if req.SendCountdown > 0 {
			req.SendCountdown--
			continue
		}
		req.SendCountdown = req.Interval

		if !due(req) {
			if req.Finished() {
				finished[req.RequestID] = true
			}
			continue
		}

		datums := s.dataDefinitions[req.DefinitionID]
		entries := make([]entryResult, 0, len(datums))
		anyChanged := false
		for _, d := range datums {
			tableEntry, _ := s.Table.Lookup(d.ClientName)
			current, ok := translate.Resolve(s.Logger, tableEntry, s.Cache, d.ClientUnit)
			if !ok {
				continue
			}
			changed := !d.HasPrevious || !current.Equal(d.PreviousValue, d.Epsilon)
			if changed {
				anyChanged = true
			}
			entries = append(entries, entryResult{spec: d, value: current, changed: changed})
		}

		encoded, emittedCount := s.buildEmission(req, entries, anyChanged)
		if len(encoded) > 0 {
			if frame, err := s.buildSimObjectDataFrame(req, encoded, emittedCount); err == nil {
				frames = append(frames, frame)
			} else if s.Logger != nil {
				s.Logger.Error("failed to encode SimObjectData", "session", s.ID, "requestId", req.RequestID, "err", err)
			}
		}

		req.LastSentAt = time.Now()
		req.EverSent = true
		if req.Finished() {
			finished[req.RequestID] = true
		}
	}

	s.removeFinishedRequests(finished)
	return frames
}

type entryResult struct {
	spec    *types.DatumSpec
	value   types.Value
	changed bool
}

func due(req *types.DataRequest) bool {
	switch req.Period {
	case types.SIMCONNECT_PERIOD_NEVER:
		return false
	case types.SIMCONNECT_PERIOD_ONCE:
		return !req.EverSent
	case types.SIMCONNECT_PERIOD_SECOND:
		return !req.EverSent || time.Since(req.LastSentAt) >= time.Second
	default: // VisualFrame, SimFrame: every tick
		return true
	}
}

// buildEmission applies the tagged/onlyWhenChanged emission policy matrix
// and updates PreviousValue for every datum actually encoded.
func (s *Session) buildEmission(req *types.DataRequest, entries []entryResult, anyChanged bool) ([]byte, int) {
	var out []byte
	count := 0

	emitAll := !req.OnlyWhenChanged || anyChanged
	if !req.TaggedFormat && !emitAll {
		return nil, 0
	}

	for _, e := range entries {
		shouldEmit := req.TaggedFormat && (!req.OnlyWhenChanged || e.changed)
		if !req.TaggedFormat {
			shouldEmit = emitAll
		}
		if !shouldEmit {
			continue
		}

		encoded, err := wire.EncodeDatum(e.spec.ClientType, e.value)
		if err != nil {
			if s.Logger != nil {
				s.Logger.Error("datatype not implemented", "session", s.ID, "clientName", e.spec.ClientName, "err", err)
			}
			continue
		}
		if req.TaggedFormat {
			var tag [4]byte
			putU32(tag[:], e.spec.DatumID)
			out = append(out, tag[:]...)
		}
		out = append(out, encoded...)
		count++

		e.spec.PreviousValue = e.value
		e.spec.HasPrevious = true
	}
	return out, count
}

func putU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func (s *Session) buildSimObjectDataFrame(req *types.DataRequest, encoded []byte, emittedCount int) ([]byte, error) {
	msg := types.SimObjectDataMsg{
		RequestID:    req.RequestID,
		ObjectID:     req.ObjectID,
		DefinitionID: req.DefinitionID,
		Flags:        uint32(req.Flags),
		EntryNumber:  1,
		OutOf:        1,
		DefineCount:  uint32(emittedCount),
		Remaining:    encoded,
	}
	return s.encodeServer(msg)
}
