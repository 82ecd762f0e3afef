package ledger

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Snapshots use the protobuf wire format of:
//
//	message Snapshot { repeated Record records = 1; }
//	message Record { int64 pid = 1; string command = 2; }
const (
	snapshotRecordsField protowire.Number = 1
	recordPIDField       protowire.Number = 1
	recordCommandField   protowire.Number = 2
)

// MarshalSnapshot encodes records so a child process can rebuild them.
func MarshalSnapshot(records []Record) []byte {
	var out []byte
	for _, r := range records {
		var rec []byte
		rec = protowire.AppendTag(rec, recordPIDField, protowire.VarintType)
		rec = protowire.AppendVarint(rec, uint64(int64(r.PID)))
		rec = protowire.AppendTag(rec, recordCommandField, protowire.BytesType)
		rec = protowire.AppendString(rec, r.Command)

		out = protowire.AppendTag(out, snapshotRecordsField, protowire.BytesType)
		out = protowire.AppendBytes(out, rec)
	}
	return out
}

// UnmarshalSnapshot decodes the output of MarshalSnapshot. Unknown fields are
// skipped.
func UnmarshalSnapshot(b []byte) ([]Record, error) {
	var out []Record
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, errors.Wrap(protowire.ParseError(n), "snapshot tag")
		}
		b = b[n:]

		if num != snapshotRecordsField || typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, errors.Wrap(protowire.ParseError(n), "snapshot field")
			}
			b = b[n:]
			continue
		}

		rec, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, errors.Wrap(protowire.ParseError(n), "snapshot record")
		}
		b = b[n:]

		record, err := unmarshalRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

func unmarshalRecord(b []byte) (Record, error) {
	var out Record
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Record{}, errors.Wrap(protowire.ParseError(n), "record tag")
		}
		b = b[n:]

		switch {
		case num == recordPIDField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return Record{}, errors.Wrap(protowire.ParseError(n), "record pid")
			}
			out.PID = int(int64(v))
			b = b[n:]
		case num == recordCommandField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return Record{}, errors.Wrap(protowire.ParseError(n), "record command")
			}
			out.Command = v
			b = b[n:]
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return Record{}, errors.Wrap(protowire.ParseError(n), "record field")
			}
			b = b[n:]
		}
	}
	return out, nil
}
