// conf.go implements SWORD .conf file parsing.
// SWORD conf files are INI-like configuration files that describe module metadata.
package sword

import (
	"bufio"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/FocuswithJustin/sword-to-obsidian/core/errors"
	"github.com/FocuswithJustin/sword-to-obsidian/internal/logging"
)

// Conf represents a parsed SWORD .conf file.
type Conf struct {
	ModuleName    string
	Description   string
	DataPath      string
	ModDrv        string
	Encoding      string
	Lang          string
	CompressType  string
	CipherKey     string
	Versification string
	Properties    map[string]string
	FilePath      string
}

// ParseConf parses a SWORD .conf file from r. name is used in errors.
func ParseConf(r io.Reader, name string) (*Conf, error) {
	conf := &Conf{
		Properties: make(map[string]string),
		FilePath:   name,
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pendingKey string
	var pending strings.Builder

	flush := func() {
		if pendingKey != "" {
			conf.set(pendingKey, strings.TrimSpace(pending.String()))
			pendingKey = ""
			pending.Reset()
		}
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		// A trailing backslash continues the value on the next line
		if pendingKey != "" {
			if strings.HasSuffix(line, "\\") {
				pending.WriteString(" ")
				pending.WriteString(strings.TrimSpace(strings.TrimSuffix(line, "\\")))
				continue
			}
			pending.WriteString(" ")
			pending.WriteString(strings.TrimSpace(line))
			flush()
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			if conf.ModuleName == "" {
				conf.ModuleName = strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			}
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if strings.HasSuffix(value, "\\") {
			pendingKey = key
			pending.WriteString(strings.TrimSpace(strings.TrimSuffix(value, "\\")))
			continue
		}
		conf.set(key, value)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, &errors.ParseError{Format: "conf", Path: name, Message: "read failed", Err: err}
	}
	if conf.ModuleName == "" {
		return nil, errors.NewParse("conf", name, "missing [ModuleName] section")
	}

	return conf, nil
}

// set stores a property, mapping known keys to struct fields.
func (c *Conf) set(key, value string) {
	c.Properties[key] = value

	switch strings.ToLower(key) {
	case "description":
		c.Description = value
	case "datapath":
		c.DataPath = value
	case "moddrv":
		c.ModDrv = value
	case "encoding":
		c.Encoding = value
	case "lang":
		c.Lang = value
	case "compresstype":
		c.CompressType = value
	case "cipherkey":
		c.CipherKey = value
	case "versification":
		c.Versification = value
	}
}

// IsBible reports whether the module driver holds Bible text.
func (c *Conf) IsBible() bool {
	switch strings.ToLower(c.ModDrv) {
	case "ztext", "ztext4", "rawtext", "rawtext4":
		return true
	default:
		return false
	}
}

// IsEncrypted returns true if the module is encrypted.
func (c *Conf) IsEncrypted() bool {
	return c.CipherKey != ""
}

// IsUTF8 reports whether verse text is UTF-8. SWORD defaults to Latin-1.
func (c *Conf) IsUTF8() bool {
	return strings.EqualFold(strings.ReplaceAll(c.Encoding, "-", ""), "utf8")
}

// DataDir returns the module data directory as an fs.FS path.
func (c *Conf) DataDir() string {
	p := strings.ReplaceAll(c.DataPath, "\\", "/")
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}

// FindConf locates the conf of the module called name in fsys/mods.d.
// Section names are matched case-insensitively.
func FindConf(fsys fs.FS, name string) (*Conf, error) {
	entries, err := fs.ReadDir(fsys, "mods.d")
	if err != nil {
		return nil, errors.NewNotFound("module directory", "mods.d")
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".conf") {
			continue
		}
		confPath := path.Join("mods.d", e.Name())
		f, err := fsys.Open(confPath)
		if err != nil {
			return nil, errors.NewIO("open", confPath, err)
		}
		conf, err := ParseConf(f, confPath)
		f.Close()
		if err != nil {
			logging.Warn("skipping conf file", "path", confPath, "error", err)
			continue
		}
		if strings.EqualFold(conf.ModuleName, name) {
			return conf, nil
		}
	}

	return nil, errors.NewNotFound("module", name)
}
