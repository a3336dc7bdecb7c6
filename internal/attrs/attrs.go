// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/s3cli/s3cli/internal/log"
)

// Attr is one column of a listing. Key addresses the value in the row, which
// may be a dotted path.
type Attr struct {
	// The key to extract from each row.
	Key string `yaml:"key" json:"Key"`
	// Should this Attr be included in output or is it just
	// intended for filtering and sorting?
	Include bool `yaml:"include" json:"Include"`
	// The key to use in the output. This is also the column title when
	// output=text.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// Transformation spec to apply to the output value.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

var lengthRegex = regexp.MustCompile(`-?\d+`)

// Transform applies the attribute's transform spec to a value and returns the
// transformed result. Spec letters:
//
//	t  RFC3339 time to local time
//	T  RFC3339 time to relative ("3 days ago")
//	h  byte count to human size ("4.2 MB")
//	l  lower case
//	u  upper case
//	N  truncate to N characters, -N elides the middle
func (a *Attr) Transform(value interface{}) interface{} {
	if a.TransformSpec == "" {
		return value
	}

	if strings.Contains(a.TransformSpec, "h") {
		if n, ok := toUint64(value); ok {
			value = humanize.Bytes(n)
			log.Tracef("bytes human: result=%v", value)
		}
	}

	result, ok := value.(string)
	if !ok {
		log.Tracef("non-string value: value=%v", value)
		return value
	}

	if strings.ContainsAny(a.TransformSpec, "tT") {
		if t, err := time.Parse(time.RFC3339, result); err == nil {
			local := t.In(time.Local)
			if strings.Contains(a.TransformSpec, "T") {
				result = humanize.Time(local)
				log.Tracef("time ago: result=%s", result)
			} else {
				result = local.Format("2006-01-02T15:04:05MST")
				log.Tracef("time local: result=%s", result)
			}
		}
	}

	// The last case letter wins so a per-attr spec overrides a global one
	// prepended to it. IOW... --attrs '*::U,key::l' will be lower case.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
		log.Tracef("case lower: result=%s", result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
		log.Tracef("case upper: result=%s", result)
	}

	// Same precedence rule as case: the last length wins.
	if match := lengthRegex.FindAllString(a.TransformSpec, -1); len(match) != 0 {
		l, _ := strconv.Atoi(match[len(match)-1])
		abs := int(math.Abs(float64(l)))
		if len(result) > abs && abs > 0 {
			if l < 0 {
				lr := abs/2 - 1
				if lr < 1 {
					lr = 1
				}
				result = result[0:lr] + ".." + result[len(result)-lr:]
				log.Tracef("length middle: result=%s", result)
			} else {
				result = result[:l]
				log.Tracef("length trunc: result=%s", result)
			}
		}
	}

	return result
}

func toUint64(v interface{}) (uint64, bool) {
	switch n := v.(type) {
	case float64:
		if n >= 0 {
			return uint64(n), true
		}
	case int64:
		if n >= 0 {
			return uint64(n), true
		}
	case int:
		if n >= 0 {
			return uint64(n), true
		}
	case uint64:
		return n, true
	}
	return 0, false
}

// AttrList is a collection of Attr used to shape output fields.
type AttrList []Attr

// MustParse builds an AttrList from a --attrs style spec. It is meant for
// compile-time defaults and panics on error.
func MustParse(spec string) AttrList {
	var a AttrList
	if err := a.Set(spec); err != nil {
		panic(err)
	}
	return a
}

// Set parses each spec from --attrs and adds it to the AttrList.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		log.Debugf("early return: value=%s", value)
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

	// Each spec is key[:outputKey[:transform]]. The output key defaults to the
	// last segment of a dotted key.
	specs := strings.Split(value, ",")
	log.Debugf("specs split: specs=%v", specs)
specloop:
	for _, spec := range specs {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}

		attr := Attr{
			Include: true,
		}

		fields := strings.Split(spec, ":")
		if len(fields) > 3 {
			return fmt.Errorf("invalid attr spec %q: too many fields", spec)
		}

		// A leading ! keeps the attr for filtering and sorting only.
		attr.Key = strings.TrimSpace(fields[keyIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("invalid attr spec %q: empty key", spec)
		}

		if attr.Key == "*" {
			attr.Include = false
		}
		log.Tracef("key parsed: key=%s, include=%v", attr.Key, attr.Include)

		segments := strings.Split(attr.Key, ".")
		attr.OutputKey = segments[len(segments)-1]
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}
		log.Tracef("output set: outputKey=%s", attr.OutputKey)

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}
		log.Tracef("transform set: spec=%s", attr.TransformSpec)

		// An attr already in the list (a command default or a repeat) is
		// updated in place.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				if len(fields) > transformIdx {
					(*a)[i].TransformSpec = attr.TransformSpec
				}
				log.Tracef("existing updated: i=%d", i)
				continue specloop
			}
		}

		*a = append(*a, attr)
		log.Tracef("attr appended: len=%d", len(*a))
	}

	return nil
}

// SetGlobalTransformSpec prepends the spec of a "*" attr to every attr.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""

	for i := range *a {
		if (*a)[i].Key == "*" {
			spec = (*a)[i].TransformSpec
			break
		}
	}
	log.Debugf("global spec: spec=%s", spec)

	if spec == "" {
		return nil
	}

	for i := range *a {
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}

	return nil
}

// Included returns the attrs that are rendered as columns.
func (a AttrList) Included() AttrList {
	out := AttrList{}
	for _, attr := range a {
		if attr.Include && attr.Key != "*" {
			out = append(out, attr)
		}
	}
	return out
}

// String returns a string representation of the AttrList in --attrs form.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}

	resultStr := strings.Join(result, ",")
	log.Debugf("string built: result=%s", resultStr)
	return resultStr
}

// Type returns the flag type for use with the flag.Value interface.
func (a *AttrList) Type() string { return "list" }
