package readfiles

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

/*
ReadSTL reads an STL surface file, ASCII or binary detected automatically,
and returns the triangle soup as corner points. The soup is meant to feed
trimesh.FromTriangles, which merges coincident corners into shared vertices;
the facet normals stored in the file are ignored, winding carries the
orientation.
*/
func ReadSTL(filename string) (soup [][3][3]float64, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to open STL file: %w", err)
	}
	defer file.Close()

	header := make([]byte, 6)
	n, err := file.Read(header)
	if err != nil {
		return nil, fmt.Errorf("unable to read STL header: %w", err)
	}
	if _, err = file.Seek(0, 0); err != nil {
		return nil, err
	}
	// ASCII files start with the "solid" keyword
	if n >= 5 && strings.HasPrefix(string(header[:5]), "solid") {
		if soup, err = readASCII(file); err == nil && len(soup) > 0 {
			return
		}
		// a binary file whose junk header happens to start with "solid"
		if _, err = file.Seek(0, 0); err != nil {
			return nil, err
		}
	}
	return readBinary(file)
}

func readASCII(r io.Reader) (soup [][3][3]float64, err error) {
	var (
		scanner = bufio.NewScanner(r)
		tri     [3][3]float64
		nVerts  int
	)
	for scanner.Scan() {
		fields := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("malformed vertex line %q", scanner.Text())
			}
			if nVerts == 3 {
				return nil, fmt.Errorf("facet with more than 3 vertices, only triangles are supported")
			}
			for k := 0; k < 3; k++ {
				if tri[nVerts][k], err = strconv.ParseFloat(fields[k+1], 64); err != nil {
					return nil, fmt.Errorf("malformed vertex coordinate %q: %w", fields[k+1], err)
				}
			}
			nVerts++
		case "endfacet":
			if nVerts != 3 {
				return nil, fmt.Errorf("facet with %d vertices, need 3", nVerts)
			}
			soup = append(soup, tri)
			nVerts = 0
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return
}

func readBinary(r io.Reader) (soup [][3][3]float64, err error) {
	header := make([]byte, 80)
	if _, err = io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("unable to read binary STL header: %w", err)
	}
	var count uint32
	if err = binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("unable to read triangle count: %w", err)
	}
	soup = make([][3][3]float64, count)
	// 50 byte records: normal, 3 vertices (float32 each), attribute count
	var rec struct {
		Normal   [3]float32
		Verts    [3][3]float32
		AttrSize uint16
	}
	for i := uint32(0); i < count; i++ {
		if err = binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("unable to read triangle %d of %d: %w", i, count, err)
		}
		for c := 0; c < 3; c++ {
			for k := 0; k < 3; k++ {
				soup[i][c][k] = float64(rec.Verts[c][k])
			}
		}
	}
	return
}
