/*
Copyright © 2025 the Poreflow authors.
This file is part of Poreflow.

Poreflow is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Poreflow is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Poreflow.  If not, see <http://www.gnu.org/licenses/>.
*/

package poreflowutil

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/mattemangia/poreflow"
)

// SaveResults writes the results in binary gob format.
func SaveResults(w io.Writer, res *poreflow.Results) error {
	e := gob.NewEncoder(w)
	if err := e.Encode(res); err != nil {
		return fmt.Errorf("poreflowutil: encoding results: %v", err)
	}
	return nil
}

// LoadResults reads results saved by SaveResults.
func LoadResults(r io.Reader) (*poreflow.Results, error) {
	res := new(poreflow.Results)
	d := gob.NewDecoder(r)
	if err := d.Decode(res); err != nil {
		return nil, fmt.Errorf("poreflowutil: decoding results: %v", err)
	}
	return res, nil
}

// SaveResultsFile saves the results to the named file.
func SaveResultsFile(filename string, res *poreflow.Results) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("poreflowutil: creating results file: %v", err)
	}
	defer f.Close()
	return SaveResults(f, res)
}

// LoadResultsFile loads results from the named file.
func LoadResultsFile(filename string) (*poreflow.Results, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("poreflowutil: opening results file: %v", err)
	}
	defer f.Close()
	return LoadResults(f)
}
