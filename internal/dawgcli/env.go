// env.go
//
// Copyright (C) 2023 Vilhjálmur Þorsteinsson / Miðeind ehf

// This file loads flag defaults from the environment, shared by both
// CLI tools. An optional .env file is read first via godotenv so
// defaults can be committed alongside a lexicon without exporting real
// shell environment variables.

/*

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.

*/

package dawgcli

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnvDefaults loads envPath (if non-empty) into the process
// environment via godotenv, without overriding variables already set,
// then returns os.Getenv(key). It is a no-op beyond the plain
// os.Getenv lookup when envPath is "".
func LoadEnvDefaults(envPath, key string) (string, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return "", err
		}
	}
	return os.Getenv(key), nil
}

// BoolEnvDefault reports the boolean value of an environment variable
// previously loaded via LoadEnvDefaults's .env pass (e.g.
// DAWG_BUILD_GUIDE, DAWG_QUERY_RANKED), defaulting to def when unset or
// unparseable.
func BoolEnvDefault(key string, def bool) bool {
	v := os.Getenv(key)
	switch v {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	default:
		return def
	}
}
