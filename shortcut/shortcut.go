package shortcut

import (
	"fmt"
	"strings"

	"github.com/carbyne/bvdf/ir"
)

// Keys of a shortcut entry.
const (
	KeyAppName            = "appname"
	KeyExe                = "exe"
	KeyStartDir           = "StartDir"
	KeyIcon               = "icon"
	KeyShortcutPath       = "ShortcutPath"
	KeyHidden             = "IsHidden"
	KeyAllowDesktopConfig = "AllowDesktopConfig"
	KeyOpenVR             = "OpenVR"
	KeyTags               = "tags"
)

// Shortcut is a non-store launcher entry. Exe and StartDir are held
// without the quotes they carry on disk.
type Shortcut struct {
	AppName            string
	Exe                string
	StartDir           string
	Icon               string
	ShortcutPath       string
	Hidden             bool
	AllowDesktopConfig bool
	OpenVR             bool
	Tags               []string
}

// ID returns the shortcut's game id.
func (s *Shortcut) ID() GameID {
	return ShortcutID(s.Exe, s.AppName)
}

// Matches reports whether s has the given name and target.
func (s *Shortcut) Matches(appName, exe string) bool {
	return s.AppName == appName && s.Exe == unquote(exe)
}

// FromCollection reads a shortcut entry. Keys are matched exactly first,
// then ignoring case.
func FromCollection(c *ir.Collection) (*Shortcut, error) {
	res := &Shortcut{}
	var err error
	if res.AppName, err = str(c, KeyAppName); err != nil {
		return nil, err
	}
	if res.Exe, err = str(c, KeyExe); err != nil {
		return nil, err
	}
	res.Exe = unquote(res.Exe)
	if res.StartDir, err = str(c, KeyStartDir); err != nil {
		return nil, err
	}
	res.StartDir = unquote(res.StartDir)
	if res.Icon, err = str(c, KeyIcon); err != nil {
		return nil, err
	}
	res.Icon = unquote(res.Icon)
	if res.ShortcutPath, err = str(c, KeyShortcutPath); err != nil {
		return nil, err
	}
	res.Hidden = ir.Truth(lookupFold(c, KeyHidden))
	res.AllowDesktopConfig = ir.Truth(lookupFold(c, KeyAllowDesktopConfig))
	res.OpenVR = ir.Truth(lookupFold(c, KeyOpenVR))
	if tags := lookupFold(c, KeyTags); tags != nil {
		tc, err := tags.Collection()
		if err != nil {
			return nil, fmt.Errorf("%w: tags: %w", ErrBadShortcut, err)
		}
		for _, v := range tc.All() {
			s, err := ir.As[string](v)
			if err != nil {
				return nil, fmt.Errorf("%w: tag: %w", ErrBadShortcut, err)
			}
			res.Tags = append(res.Tags, s)
		}
	}
	return res, nil
}

// Collection returns the on-disk form of s.
func (s *Shortcut) Collection() *ir.Collection {
	c := ir.NewCollection()
	c.Set(KeyAppName, ir.FromString(s.AppName))
	c.Set(KeyExe, ir.FromString(quote(s.Exe)))
	c.Set(KeyStartDir, ir.FromString(quote(s.StartDir)))
	icon := s.Icon
	if icon != "" {
		icon = quote(icon)
	}
	c.Set(KeyIcon, ir.FromString(icon))
	c.Set(KeyShortcutPath, ir.FromString(s.ShortcutPath))
	c.Set(KeyHidden, flag(s.Hidden))
	c.Set(KeyAllowDesktopConfig, flag(s.AllowDesktopConfig))
	c.Set(KeyOpenVR, flag(s.OpenVR))
	tags := make([]*ir.Token, len(s.Tags))
	for i, t := range s.Tags {
		tags[i] = ir.FromString(t)
	}
	c.Set(KeyTags, ir.FromCollection(ir.FromSlice(tags...)))
	return c
}

func flag(b bool) *ir.Token {
	if b {
		return ir.FromInt32(1)
	}
	return ir.FromInt32(0)
}

func lookupFold(c *ir.Collection, key string) *ir.Token {
	if v := c.Get(key); v != nil {
		return v
	}
	for k, v := range c.All() {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

// str reads an optional string property; absent keys read as "".
func str(c *ir.Collection, key string) (string, error) {
	v := lookupFold(c, key)
	if v == nil {
		return "", nil
	}
	s, err := v.Text()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrBadShortcut, key, err)
	}
	return s, nil
}

func quote(s string) string {
	return `"` + unquote(s) + `"`
}

func unquote(s string) string {
	return strings.Trim(s, `"`)
}
