/*
 * Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package gql

import (
	"fmt"
	"os"
)

// ReadFile reads the file at path from disk. The version is the
// modification time in milliseconds, so rereading an unchanged file yields
// the same version.
func ReadFile(path string) (*File, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &File{Content: content, Version: int(fi.ModTime().UnixMilli())}, nil
}

// ReadFiles reads the files at paths from disk, keyed by path.
func ReadFiles(paths []string) (map[string]*File, error) {
	files := make(map[string]*File, len(paths))
	for _, path := range paths {
		f, err := ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file: %w", err)
		}
		files[path] = f
	}
	return files, nil
}
