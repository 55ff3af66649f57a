package sword

import (
	"archive/zip"
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
)

type ref struct {
	book    string
	chapter int
	verse   int
}

// testModule describes a SWORD installation to build on disk.
type testModule struct {
	name       string
	driver     string // zText, zText4, RawText, RawText4
	compress   string // zText only: ZIP, XZ
	encoding   string
	extra      string // appended verbatim to the conf
	testaments []string
	verses     map[ref]string
}

// build writes the module under root as mods.d/<name>.conf plus its data
// files and returns root.
func (m testModule) build(t *testing.T, root string) string {
	t.Helper()

	vers, err := VersificationFor("")
	if err != nil {
		t.Fatalf("VersificationFor: %v", err)
	}

	dataPath := "modules/texts/" + strings.ToLower(m.driver) + "/" + strings.ToLower(m.name)
	if err := os.MkdirAll(filepath.Join(root, "mods.d"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(dataPath)), 0o755); err != nil {
		t.Fatal(err)
	}

	var conf strings.Builder
	fmt.Fprintf(&conf, "[%s]\n", m.name)
	fmt.Fprintf(&conf, "DataPath=./%s/\n", dataPath)
	fmt.Fprintf(&conf, "ModDrv=%s\n", m.driver)
	if m.compress != "" {
		fmt.Fprintf(&conf, "CompressType=%s\n", m.compress)
	}
	if m.encoding != "" {
		fmt.Fprintf(&conf, "Encoding=%s\n", m.encoding)
	}
	fmt.Fprintf(&conf, "Description=Test module %s\n", m.name)
	conf.WriteString(m.extra)
	writeFile(t, filepath.Join(root, "mods.d", strings.ToLower(m.name)+".conf"), []byte(conf.String()))

	for _, testament := range m.testaments {
		nt := testament == "nt"
		texts := make([][]byte, vers.entries(nt))
		for r, text := range m.verses {
			if vers.IsNT(vers.BookIndex(r.book)) != nt {
				continue
			}
			idx, err := vers.Index(r.book, r.chapter, r.verse)
			if err != nil {
				t.Fatalf("Index(%v): %v", r, err)
			}
			texts[idx] = []byte(text)
		}

		base := filepath.Join(root, filepath.FromSlash(dataPath), testament)
		switch strings.ToLower(m.driver) {
		case "ztext", "ztext4":
			writeZText(t, base, texts, m.driver == "zText4", m.compress)
		default:
			writeRawText(t, base, texts, m.driver == "RawText4")
		}
	}
	return root
}

func writeZText(t *testing.T, base string, texts [][]byte, wide bool, compress string) {
	t.Helper()

	var block, bzv bytes.Buffer
	for _, text := range texts {
		binary.Write(&bzv, binary.LittleEndian, uint32(0))
		binary.Write(&bzv, binary.LittleEndian, uint32(block.Len()))
		if wide {
			binary.Write(&bzv, binary.LittleEndian, uint32(len(text)))
		} else {
			binary.Write(&bzv, binary.LittleEndian, uint16(len(text)))
		}
		block.Write(text)
	}

	var bzz bytes.Buffer
	var w io.WriteCloser
	switch compress {
	case "XZ":
		xw, err := xz.NewWriter(&bzz)
		if err != nil {
			t.Fatalf("xz.NewWriter: %v", err)
		}
		w = xw
	default:
		w = zlib.NewWriter(&bzz)
	}
	if _, err := w.Write(block.Bytes()); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	var bzs bytes.Buffer
	binary.Write(&bzs, binary.LittleEndian, uint32(0))
	binary.Write(&bzs, binary.LittleEndian, uint32(bzz.Len()))
	binary.Write(&bzs, binary.LittleEndian, uint32(block.Len()))

	writeFile(t, base+".bzs", bzs.Bytes())
	writeFile(t, base+".bzv", bzv.Bytes())
	writeFile(t, base+".bzz", bzz.Bytes())
}

func writeRawText(t *testing.T, base string, texts [][]byte, wide bool) {
	t.Helper()

	var data, vss bytes.Buffer
	for _, text := range texts {
		binary.Write(&vss, binary.LittleEndian, uint32(data.Len()))
		if wide {
			binary.Write(&vss, binary.LittleEndian, uint32(len(text)))
		} else {
			binary.Write(&vss, binary.LittleEndian, uint16(len(text)))
		}
		data.Write(text)
	}

	writeFile(t, base+".vss", vss.Bytes())
	writeFile(t, base, data.Bytes())
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// zipDir packs the directory tree at dir into a zip archive at dst.
func zipDir(t *testing.T, dir, dst string) string {
	t.Helper()

	out, err := os.Create(dst)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})
	if err != nil {
		t.Fatalf("zip %s: %v", dir, err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return dst
}

// genesisModule is a two-testament module with a few verses of text.
func genesisModule(driver, compress string) testModule {
	return testModule{
		name:       "KJV",
		driver:     driver,
		compress:   compress,
		encoding:   "UTF-8",
		testaments: []string{"ot", "nt"},
		verses: map[ref]string{
			{"Gen", 1, 1}:   `<w lemma="strong:H07225">In the beginning</w> God created the heaven and the earth.`,
			{"Gen", 1, 2}:   "And the earth was without form, and void.",
			{"Gen", 1, 31}:  "And the evening and the morning were the sixth day.",
			{"Gen", 2, 1}:   "Thus the heavens and the earth were finished.",
			{"Matt", 1, 1}:  "The book of the generation of Jesus Christ.",
			{"Rev", 22, 21}: "The grace of our Lord Jesus Christ be with you all. Amen.",
		},
	}
}
