package qshape

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"map-catalog/mapcache/mrecord"
)

// Record holds exactly one of the three shapes. The zero Record has
// KindUnknown and normalizes to an empty View.
type Record struct {
	kind      Kind
	local     *LocalRecord
	remote    *RemoteRecord
	canonical *mrecord.Record
}

var kindNames = map[Kind]string{
	KindUnknown:   "unknown",
	KindLocal:     "local",
	KindRemote:    "remote",
	KindCanonical: "canonical",
}

var ErrUnknownKind = errors.New("unknown record kind")

func (r Kind) String() string {
	name, ok := kindNames[r]
	if !ok {
		return fmt.Sprintf("Kind(%d)", int(r))
	}
	return name
}

func ParseKind(s string) (Kind, error) {
	for kind, name := range kindNames {
		if kind != KindUnknown && name == strings.ToLower(s) {
			return kind, nil
		}
	}
	return KindUnknown, errors.Wrapf(ErrUnknownKind, `ParseKind error: "%s"`, s)
}

func Local(local LocalRecord) Record {
	return Record{kind: KindLocal, local: &local}
}

func Remote(remote RemoteRecord) Record {
	return Record{kind: KindRemote, remote: &remote}
}

func Canonical(canonical mrecord.Record) Record {
	return Record{kind: KindCanonical, canonical: &canonical}
}

func (r Record) Kind() Kind {
	return r.kind
}

func (r Record) AsLocal() (*LocalRecord, bool) {
	return r.local, r.kind == KindLocal
}

func (r Record) AsRemote() (*RemoteRecord, bool) {
	return r.remote, r.kind == KindRemote
}

func (r Record) AsCanonical() (*mrecord.Record, bool) {
	return r.canonical, r.kind == KindCanonical
}

// Key identifies the record among records of any kind. Local records are
// keyed by hash and path, since one map can be installed twice. A record
// without an id, hash or path has no identity and gets "".
func (r Record) Key() string {
	switch r.kind {
	case KindLocal:
		hash := strings.ToLower(r.local.Hash)
		switch {
		case hash == "" && r.local.Path == "":
			return ""
		case hash == "":
			return "local:" + r.local.Path
		case r.local.Path == "":
			return "local:" + hash
		default:
			return "local:" + hash + "@" + r.local.Path
		}
	case KindRemote:
		if r.remote.ID == "" {
			return ""
		}
		return "remote:" + strings.ToLower(r.remote.ID)
	case KindCanonical:
		if r.canonical.Hash == "" {
			return ""
		}
		return "canonical:" + r.canonical.Hash
	default:
		return ""
	}
}

type recordJSON struct {
	Kind   string          `json:"kind"`
	Record json.RawMessage `json:"record"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	var value any
	switch r.kind {
	case KindLocal:
		value = r.local
	case KindRemote:
		value = r.remote
	case KindCanonical:
		value = r.canonical
	}
	bs, err := json.Marshal(value)
	if err != nil {
		return nil, errors.Wrap(err, "Record.MarshalJSON error")
	}
	return json.Marshal(recordJSON{Kind: r.kind.String(), Record: bs})
}

func (r *Record) UnmarshalJSON(bs []byte) error {
	wrapped := recordJSON{}
	if err := json.Unmarshal(bs, &wrapped); err != nil {
		return errors.Wrap(err, "Record.UnmarshalJSON error")
	}
	kind, err := ParseKind(wrapped.Kind)
	if err != nil {
		return errors.Wrap(err, "Record.UnmarshalJSON error")
	}

	switch kind {
	case KindLocal:
		local := LocalRecord{}
		err = json.Unmarshal(wrapped.Record, &local)
		*r = Local(local)
	case KindRemote:
		remote := RemoteRecord{}
		err = json.Unmarshal(wrapped.Record, &remote)
		*r = Remote(remote)
	case KindCanonical:
		canonical := mrecord.Record{}
		err = json.Unmarshal(wrapped.Record, &canonical)
		*r = Canonical(canonical)
	}
	if err != nil {
		return errors.Wrapf(err, `Record.UnmarshalJSON error: kind "%s"`, kind)
	}
	return nil
}
