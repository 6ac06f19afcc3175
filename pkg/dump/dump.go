/*
Copyright (c) 2018 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

  http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package dump contains functions used to dump JSON documents to the output of the tool.
package dump

import (
	"encoding/json"
	"io"
	"runtime"

	"github.com/nwidger/jsoncolor"
	"gopkg.in/yaml.v3"

	"github.com/iamctl/iamctl/pkg/output"
)

// Pretty dumps the given data to the given stream so that it looks pretty. If the data is a valid
// JSON document then it will be indented before printing it. If the stream is a terminal then the
// output will also use colors.
func Pretty(stream io.Writer, body []byte) error {
	if len(body) == 0 {
		return nil
	}
	var data any
	err := json.Unmarshal(body, &data)
	if err != nil {
		return dumpBytes(stream, body)
	}
	if useColor(stream) {
		encoder := jsoncolor.NewEncoder(stream)
		encoder.SetEscapeHTML(false)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	}
	encoder := json.NewEncoder(stream)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Single functions exactly the same as Pretty except it generates a single line without indentation
// or any other white space.
func Single(stream io.Writer, body []byte) error {
	if len(body) == 0 {
		return nil
	}
	var data any
	err := json.Unmarshal(body, &data)
	if err != nil {
		return dumpBytes(stream, body)
	}
	if useColor(stream) {
		err = jsoncolor.NewEncoder(stream).Encode(data)
		if err != nil {
			return err
		}
		_, err = stream.Write([]byte("\n"))
		return err
	}
	encoder := json.NewEncoder(stream)
	encoder.SetEscapeHTML(false)
	return encoder.Encode(data)
}

// YAML converts the given JSON document to YAML and dumps it to the given stream. Keys keep the
// names they have in the JSON document. Data that isn't valid JSON is written unchanged.
func YAML(stream io.Writer, body []byte) error {
	if len(body) == 0 {
		return nil
	}
	// JSON is valid YAML, parsing it this way keeps the order of the keys.
	var data yaml.Node
	err := yaml.Unmarshal(body, &data)
	if err != nil || !json.Valid(body) {
		return dumpBytes(stream, body)
	}
	clearStyle(&data)
	encoder := yaml.NewEncoder(stream)
	encoder.SetIndent(2)
	err = encoder.Encode(&data)
	if err != nil {
		return err
	}
	return encoder.Close()
}

// clearStyle removes the flow style that the YAML parser assigns to JSON objects and arrays, so
// that they are written in block style.
func clearStyle(node *yaml.Node) {
	node.Style &^= yaml.FlowStyle
	if node.Kind == yaml.ScalarNode && node.Tag == "!!str" {
		node.Style &^= yaml.DoubleQuotedStyle
	}
	for _, child := range node.Content {
		clearStyle(child)
	}
}

func dumpBytes(stream io.Writer, data []byte) error {
	_, err := stream.Write(data)
	if err != nil {
		return err
	}
	_, err = stream.Write([]byte("\n"))
	return err
}

// useColor checks if colors should be used writing to the stream. Colors aren't used on Windows.
func useColor(stream io.Writer) bool {
	if runtime.GOOS == "windows" {
		return false
	}
	return output.IsTerminal(stream)
}
