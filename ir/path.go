package ir

import (
	"fmt"
	"strings"
)

// Path addresses a property within nested collections, one key per
// element. Its text form joins keys with '/', escaping '~' as "~0" and '/'
// as "~1".
type Path []string

// Wildcard matches every key of a collection in ListPath.
const Wildcard = "*"

func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	parts := make([]string, len(p))
	for i, k := range p {
		parts[i] = pathString(k)
	}
	return strings.Join(parts, "/")
}

// Append returns a new path with key added. p is not modified.
func (p Path) Append(key string) Path {
	res := make(Path, len(p)+1)
	copy(res, p)
	res[len(p)] = key
	return res
}

func ParsePath(s string) (Path, error) {
	s = strings.TrimPrefix(s, "/")
	if s == "" {
		return Path{}, nil
	}
	frags := strings.Split(s, "/")
	res := make(Path, len(frags))
	for i, frag := range frags {
		key, err := parseField(frag)
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", s, err)
		}
		res[i] = key
	}
	return res, nil
}

func parseField(frag string) (string, error) {
	if strings.IndexByte(frag, '~') == -1 {
		return frag, nil
	}
	res := make([]byte, 0, len(frag))
	for i := 0; i < len(frag); i++ {
		c := frag[i]
		if c != '~' {
			res = append(res, c)
			continue
		}
		if i+1 == len(frag) {
			return "", fmt.Errorf("dangling '~'")
		}
		i++
		switch frag[i] {
		case '0':
			res = append(res, '~')
		case '1':
			res = append(res, '/')
		default:
			return "", fmt.Errorf("bad escape \"~%c\"", frag[i])
		}
	}
	return string(res), nil
}

func pathString(k string) string {
	if strings.IndexAny(k, "~/") == -1 {
		return k
	}
	k = strings.ReplaceAll(k, "~", "~0")
	return strings.ReplaceAll(k, "/", "~1")
}

// GetPath returns the value at path, or nil if some key along the way is
// absent. Traversing through a leaf is an error.
func (c *Collection) GetPath(path string) (*Token, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	if len(p) == 0 {
		return FromCollection(c), nil
	}
	cur := c
	for i, key := range p {
		if key == Wildcard {
			return nil, fmt.Errorf("wildcard in get path %q", path)
		}
		v := cur.Get(key)
		if v == nil {
			return nil, nil
		}
		if i == len(p)-1 {
			return v, nil
		}
		next, err := v.Collection()
		if err != nil {
			return nil, fmt.Errorf("at %s: %w", p[:i+1], err)
		}
		cur = next
	}
	return nil, nil
}

// Match is a value found by ListPath together with its full path.
type Match struct {
	Path  Path
	Value *Token
}

// ListPath returns every value matching path, where a "*" element matches
// all keys of a collection. Leaves met before the end of the path are
// skipped. Duplicate keys each produce a match.
func (c *Collection) ListPath(dst []Match, path string) ([]Match, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return c.listPath(dst, nil, p), nil
}

func (c *Collection) listPath(dst []Match, at, p Path) []Match {
	if len(p) == 0 {
		return append(dst, Match{Path: at, Value: FromCollection(c)})
	}
	for i := range c.props {
		prop := &c.props[i]
		if p[0] != Wildcard && prop.Key != p[0] {
			continue
		}
		here := at.Append(prop.Key)
		if len(p) == 1 {
			dst = append(dst, Match{Path: here, Value: prop.Value})
			continue
		}
		if prop.Value == nil || prop.Value.Type() != CollectionType {
			continue
		}
		dst = prop.Value.coll.listPath(dst, here, p[1:])
	}
	return dst
}
