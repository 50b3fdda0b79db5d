// Copyright 2025 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package command

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/joshuanianji/edgedb/go/parser/keywords"
)

// writeStructured encodes v in one of the machine-readable formats. TOML
// needs a table at the top level, so v should always be a struct.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(v)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// palette colors text output according to the --color mode
type palette struct {
	mode string
}

func (p palette) apply(c *color.Color) *color.Color {
	switch p.mode {
	case "always":
		c.EnableColor()
	case "never":
		c.DisableColor()
	}
	return c
}

// category returns the color used for words of category c
func (p palette) category(c keywords.Category) *color.Color {
	switch c {
	case keywords.CurrentReserved:
		return p.apply(color.New(color.FgRed, color.Bold))
	case keywords.FutureReserved:
		return p.apply(color.New(color.FgYellow))
	case keywords.Unreserved:
		return p.apply(color.New(color.FgGreen))
	default:
		return p.apply(color.New(color.Faint))
	}
}

func (p palette) header() *color.Color {
	return p.apply(color.New(color.Bold, color.Underline))
}

func (p palette) failure() *color.Color {
	return p.apply(color.New(color.FgRed))
}

func (ec *EdgeqlkwCommand) palette() palette {
	return palette{mode: ec.cfg.Color}
}
