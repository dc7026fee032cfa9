package shortcut

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"github.com/carbyne/bvdf/datafile"
	"github.com/carbyne/bvdf/debug"
	"github.com/carbyne/bvdf/ir"
)

// RootKey names the collection holding the shortcut entries.
const RootKey = "shortcuts"

// File is an editable shortcut file. Entries live in an array collection
// under RootKey; edits keep that collection an array.
type File struct {
	root   *ir.Collection
	list   *ir.Collection
	logger *slog.Logger
}

// New returns a file with no shortcuts.
func New() *File {
	root := ir.NewCollection()
	list := ir.NewCollection()
	root.Set(RootKey, ir.FromCollection(list))
	return &File{root: root, list: list, logger: slog.Default()}
}

// Open wraps a decoded shortcut file.
func Open(root *ir.Collection) (*File, error) {
	v := root.Get(RootKey)
	if v == nil {
		return nil, ErrNoShortcuts
	}
	list, err := v.Collection()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoShortcuts, err)
	}
	return &File{root: root, list: list, logger: slog.Default()}, nil
}

// Load reads and opens the shortcut file at path. Compressed backups
// (".zst") are decompressed first.
func Load(path string) (*File, error) {
	data, err := readMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	root, err := datafile.DecodeShortcuts(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f, err := Open(root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Root returns the underlying tree.
func (f *File) Root() *ir.Collection {
	return f.root
}

func (f *File) Len() int {
	return f.list.Len()
}

// List returns all entries in file order.
func (f *File) List() ([]Shortcut, error) {
	res := make([]Shortcut, 0, f.list.Len())
	for k, v := range f.list.All() {
		sc, err := entry(k, v)
		if err != nil {
			return nil, err
		}
		res = append(res, *sc)
	}
	return res, nil
}

func entry(key string, v *ir.Token) (*Shortcut, error) {
	c, err := v.Collection()
	if err != nil {
		return nil, fmt.Errorf("%w: entry %s: %w", ErrBadShortcut, key, err)
	}
	sc, err := FromCollection(c)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", key, err)
	}
	return sc, nil
}

// Find returns the entry with the given name and target.
func (f *File) Find(appName, exe string) (*Shortcut, error) {
	scs, err := f.List()
	if err != nil {
		return nil, err
	}
	for i := range scs {
		if scs[i].Matches(appName, exe) {
			return &scs[i], nil
		}
	}
	return nil, nil
}

// ForExe returns the entries launching exe.
func (f *File) ForExe(exe string) ([]Shortcut, error) {
	scs, err := f.List()
	if err != nil {
		return nil, err
	}
	var res []Shortcut
	exe = unquote(exe)
	for _, sc := range scs {
		if sc.Exe == exe {
			res = append(res, sc)
		}
	}
	return res, nil
}

// Add appends the given shortcuts, skipping repeats and entries already
// present. It returns the number added.
func (f *File) Add(scs ...Shortcut) (int, error) {
	existing, err := f.List()
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range scs {
		sc := &scs[i]
		if containsMatch(existing, sc) {
			continue
		}
		if err := f.list.AppendArrayItem(ir.FromCollection(sc.Collection())); err != nil {
			return n, fmt.Errorf("adding %q: %w", sc.AppName, err)
		}
		if debug.Edit() {
			debug.Logf("shortcut: add %q %q as %s\n", sc.AppName, sc.Exe, sc.ID())
		}
		existing = append(existing, *sc)
		n++
	}
	return n, nil
}

func containsMatch(scs []Shortcut, sc *Shortcut) bool {
	for i := range scs {
		if scs[i].Matches(sc.AppName, sc.Exe) {
			return true
		}
	}
	return false
}

// Remove deletes every entry matching one of scs by name and target and
// returns the number removed. Entries are removed from the highest index
// down so the remaining entries are renumbered once each.
func (f *File) Remove(scs ...Shortcut) (int, error) {
	var keys []string
	for k, v := range f.list.All() {
		sc, err := entry(k, v)
		if err != nil {
			return 0, err
		}
		if containsMatch(scs, sc) {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a > b
	})
	n := 0
	for _, k := range keys {
		m := f.list.RemoveByKey(k)
		if debug.Edit() {
			debug.Logf("shortcut: remove entry %s (%d)\n", k, m)
		}
		n += m
	}
	return n, nil
}

// ID returns the game id of the entry with the given name and target, or
// false if there is none.
func (f *File) ID(appName, exe string) (GameID, bool, error) {
	sc, err := f.Find(appName, exe)
	if err != nil || sc == nil {
		return 0, false, err
	}
	return sc.ID(), true, nil
}

// Save writes f to path, first copying any existing file aside when a
// backup option is given.
func (f *File) Save(path string, opts ...SaveOption) error {
	o := &saveOptions{now: defaultClock, logger: f.logger}
	for _, opt := range opts {
		opt(o)
	}
	if o.backup {
		if _, err := os.Stat(path); err == nil {
			bak, err := Backup(path, o.backupDir, o.compress, o.now())
			if err != nil {
				return fmt.Errorf("backup of %s: %w", path, err)
			}
			o.logger.Info("backed up shortcut file", "path", path, "backup", bak)
		}
	}
	return datafile.SaveShortcuts(path, f.root)
}
