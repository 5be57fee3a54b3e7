// Package record defines the on-disk and on-wire format of stored scan results.
package record

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.trai.ch/provcache/internal/core/domain"
	"go.trai.ch/provcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Extension is the file extension of record keys.
const Extension = ".json"

const emptyComponent = "_"

// rawEncodingBase64 marks a raw payload that is not a JSON document and is
// stored as a base64 string instead.
const rawEncodingBase64 = "base64"

type envelope struct {
	Checksum    string          `json:"checksum"`
	RawEncoding string          `json:"raw_encoding,omitempty"`
	Result      json.RawMessage `json:"result"`
}

// Entry is an encoded record together with the key it was stored under.
type Entry struct {
	Key  string
	Data []byte
}

// Encode serializes result into a checksummed record.
// Payloads that are not JSON documents are carried base64 encoded.
func Encode(result domain.ScanResult) ([]byte, error) {
	var rawEncoding string
	if len(result.Raw) > 0 && !json.Valid(result.Raw) {
		encoded, err := json.Marshal(base64.StdEncoding.EncodeToString(result.Raw))
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
		}
		result.Raw = encoded
		rawEncoding = rawEncodingBase64
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	sum, err := checksum(data)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	out, err := json.Marshal(envelope{Checksum: sum, RawEncoding: rawEncoding, Result: data})
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	return out, nil
}

// Decode parses a record produced by Encode and verifies its checksum.
// Any failure is a *domain.BackendError of kind domain.BackendCorrupt.
func Decode(data []byte) (domain.ScanResult, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return domain.ScanResult{}, domain.NewCorruptError("decode", err)
	}

	if len(env.Result) == 0 {
		return domain.ScanResult{}, domain.NewCorruptError("decode", zerr.New("record has no result"))
	}

	sum, err := checksum(env.Result)
	if err != nil {
		return domain.ScanResult{}, domain.NewCorruptError("decode", err)
	}

	if sum != env.Checksum {
		mismatch := zerr.With(zerr.New("checksum mismatch"), "expected", env.Checksum)
		return domain.ScanResult{}, domain.NewCorruptError("decode", zerr.With(mismatch, "actual", sum))
	}

	var result domain.ScanResult
	if err := json.Unmarshal(env.Result, &result); err != nil {
		return domain.ScanResult{}, domain.NewCorruptError("decode", err)
	}

	switch env.RawEncoding {
	case "":
	case rawEncodingBase64:
		raw, err := decodeBase64Payload(result.Raw)
		if err != nil {
			return domain.ScanResult{}, domain.NewCorruptError("decode", err)
		}
		result.Raw = raw
	default:
		return domain.ScanResult{}, domain.NewCorruptError("decode",
			zerr.With(zerr.New("unknown raw payload encoding"), "encoding", env.RawEncoding))
	}

	return result, nil
}

func decodeBase64Payload(doc domain.RawPayload) (domain.RawPayload, error) {
	var encoded string
	if err := json.Unmarshal(doc, &encoded); err != nil {
		return nil, err
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// DecodeAll decodes entries in order. Corrupt entries are logged with their
// key and left out of the returned slice.
func DecodeAll(logger ports.Logger, entries []Entry) []domain.ScanResult {
	results := make([]domain.ScanResult, 0, len(entries))
	for _, entry := range entries {
		result, err := Decode(entry.Data)
		if err != nil {
			logger.Warn("skipping corrupt scan result record", "key", entry.Key, "error", err.Error())
			continue
		}
		results = append(results, result)
	}

	return results
}

// NewKey returns a unique record key. Keys sort by creation time.
func NewKey() string {
	return fmt.Sprintf("%020d-%s%s", time.Now().UnixNano(), uuid.NewString(), Extension)
}

// IsKey reports whether name looks like a key returned by NewKey.
func IsKey(name string) bool {
	stem, ok := strings.CutSuffix(name, Extension)
	if !ok {
		return false
	}

	nanos, id, ok := strings.Cut(stem, "-")
	if !ok {
		return false
	}

	if _, err := strconv.ParseInt(nanos, 10, 64); err != nil {
		return false
	}

	_, err := uuid.Parse(id)
	return err == nil
}

// Path maps id to the slash-separated relative location of its records.
func Path(id domain.Identifier) string {
	return path.Join(
		escapeComponent(id.Type),
		escapeComponent(id.Namespace),
		escapeComponent(id.Name),
		escapeComponent(id.Version),
	)
}

func escapeComponent(component string) string {
	switch component {
	case "":
		return emptyComponent
	case emptyComponent:
		return "%5F"
	case ".":
		return "%2E"
	case "..":
		return "%2E%2E"
	default:
		return url.PathEscape(component)
	}
}

// checksum hashes the canonical form of a JSON document, so that stores
// which reformat JSON (for example PostgreSQL JSONB) still verify.
func checksum(doc []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return "", err
	}

	canonical, err := json.Marshal(value)
	if err != nil {
		return "", err
	}

	return strconv.FormatUint(xxhash.Sum64(canonical), 16), nil
}
