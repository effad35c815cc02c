package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var (
	errInvalidGLTFVersion = errors.New("invalid glTF version: must be 2.0")
	errInvalidGLBMagic    = errors.New("invalid GLB magic number")
	errInvalidGLBVersion  = errors.New("invalid GLB version: must be 2")
	errMissingJSONChunk   = errors.New("GLB file missing JSON chunk")
	errInvalidDataURI     = errors.New("invalid data URI")
	errBufferSizeMismatch = errors.New("buffer size mismatch")
	errNoDocument         = errors.New("no document loaded")
)

// gltfParserImpl is the implementation of the gltfParser interface.
type gltfParserImpl struct {
	baseDir        string
	document       *gltfDocument
	glbBinaryChunk []byte
}

// gltfParser loads a glTF or GLB document and reads typed data out of its accessors.
type gltfParser interface {
	// Parse loads and parses a glTF/GLB file. GLB is detected by extension or magic.
	//
	// Parameters:
	//   - path: path to the glTF or GLB file
	//
	// Returns:
	//   - error: error if parsing fails
	Parse(path string) error

	// ParseReader parses a document from a stream. External URIs resolve against baseDir.
	//
	// Parameters:
	//   - r: reader containing glTF JSON or GLB data
	//   - baseDir: directory used to resolve relative URIs
	//   - isGLB: true if the data is in GLB format
	//
	// Returns:
	//   - error: error if parsing fails
	ParseReader(r io.Reader, baseDir string, isGLB bool) error

	// Document returns the parsed document, nil before a successful parse.
	Document() *gltfDocument

	// BaseDir returns the directory external URIs are resolved against.
	BaseDir() string

	// ReadVec2Accessor reads a VEC2 accessor. Normalized integer components are
	// mapped to [0,1] or [-1,1].
	ReadVec2Accessor(accessorIndex int) ([][2]float32, error)

	// ReadVec3Accessor reads a VEC3 FLOAT accessor.
	ReadVec3Accessor(accessorIndex int) ([][3]float32, error)

	// ReadIndicesAccessor reads an unsigned SCALAR accessor widened to uint32.
	ReadIndicesAccessor(accessorIndex int) ([]uint32, error)

	// ReadBufferView returns the bytes of a buffer view.
	//
	// Parameters:
	//   - viewIndex: the index of the buffer view
	//
	// Returns:
	//   - []byte: the view's bytes, aliasing the loaded buffer
	//   - error: error if the view is out of range
	ReadBufferView(viewIndex int) ([]byte, error)
}

var _ gltfParser = &gltfParserImpl{}

func newGLTFParser() gltfParser {
	return &gltfParserImpl{}
}

func (p *gltfParserImpl) Document() *gltfDocument {
	return p.document
}

func (p *gltfParserImpl) BaseDir() string {
	return p.baseDir
}

func (p *gltfParserImpl) Parse(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read file")
	}
	p.baseDir = filepath.Dir(path)

	if strings.EqualFold(filepath.Ext(path), ".glb") || isGLBData(data) {
		return p.parseGLB(data)
	}
	return p.parseGLTF(data)
}

func (p *gltfParserImpl) ParseReader(r io.Reader, baseDir string, isGLB bool) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "failed to read data")
	}
	p.baseDir = baseDir

	if isGLB {
		return p.parseGLB(data)
	}
	return p.parseGLTF(data)
}

func isGLBData(data []byte) bool {
	return len(data) >= 4 && binary.LittleEndian.Uint32(data[:4]) == gltfGLBMagic
}

func (p *gltfParserImpl) parseGLTF(data []byte) error {
	var doc gltfDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "failed to parse glTF JSON")
	}
	return p.finish(&doc)
}

// parseGLB splits a GLB container into its JSON and BIN chunks.
func (p *gltfParserImpl) parseGLB(data []byte) error {
	if len(data) < 12 {
		return errors.New("GLB file too small")
	}
	r := bytes.NewReader(data)

	var header gltfGLBHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return errors.Wrap(err, "failed to read GLB header")
	}
	if header.Magic != gltfGLBMagic {
		return errInvalidGLBMagic
	}
	if header.Version != gltfGLBVersion {
		return errInvalidGLBVersion
	}

	var jsonData []byte
	for {
		var chunk gltfGLBChunkHeader
		if err := binary.Read(r, binary.LittleEndian, &chunk); err != nil {
			if err == io.EOF {
				break
			}
			return errors.Wrap(err, "failed to read chunk header")
		}
		body := make([]byte, chunk.ChunkLength)
		if _, err := io.ReadFull(r, body); err != nil {
			return errors.Wrap(err, "failed to read chunk data")
		}
		switch chunk.ChunkType {
		case gltfGLBChunkJSON:
			jsonData = body
		case gltfGLBChunkBIN:
			p.glbBinaryChunk = body
		}
	}
	if jsonData == nil {
		return errMissingJSONChunk
	}

	var doc gltfDocument
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return errors.Wrap(err, "failed to parse glTF JSON")
	}
	return p.finish(&doc)
}

func (p *gltfParserImpl) finish(doc *gltfDocument) error {
	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return errInvalidGLTFVersion
	}
	for _, ext := range doc.ExtensionsRequired {
		if ext != "KHR_materials_specular" && ext != "KHR_materials_pbrSpecularGlossiness" {
			return errors.Errorf("required extension %s is not supported", ext)
		}
	}
	if err := p.loadBuffers(doc); err != nil {
		return errors.Wrap(err, "failed to load buffers")
	}
	p.document = doc
	return nil
}

// loadBuffers fills every buffer from its URI or, for the first URI-less buffer, the GLB BIN chunk.
func (p *gltfParserImpl) loadBuffers(doc *gltfDocument) error {
	for i := range doc.Buffers {
		buf := &doc.Buffers[i]

		switch {
		case buf.URI == "" && i == 0 && p.glbBinaryChunk != nil:
			buf.Data = p.glbBinaryChunk
		case buf.URI == "":
			return errors.Errorf("buffer %d has no URI and no GLB binary chunk", i)
		default:
			data, err := p.loadURI(buf.URI)
			if err != nil {
				return errors.Wrapf(err, "buffer %d", i)
			}
			buf.Data = data
		}

		if len(buf.Data) < buf.ByteLength {
			return errors.Wrapf(errBufferSizeMismatch, "buffer %d", i)
		}
	}
	return nil
}

// loadURI reads a data URI or a file relative to the base directory.
func (p *gltfParserImpl) loadURI(uri string) ([]byte, error) {
	if strings.HasPrefix(uri, "data:") {
		return decodeDataURI(uri)
	}
	data, err := os.ReadFile(filepath.Join(p.baseDir, filepath.FromSlash(uri)))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %q", uri)
	}
	return data, nil
}

// decodeDataURI decodes data:[<mediatype>];base64,<data>.
func decodeDataURI(uri string) ([]byte, error) {
	comma := strings.Index(uri, ",")
	if comma < 0 {
		return nil, errInvalidDataURI
	}
	header := uri[len("data:"):comma]
	if !strings.HasSuffix(header, ";base64") {
		return nil, errors.Wrapf(errInvalidDataURI, "unsupported encoding %q", header)
	}
	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode base64")
	}
	return data, nil
}

func (p *gltfParserImpl) ReadBufferView(viewIndex int) ([]byte, error) {
	if p.document == nil {
		return nil, errNoDocument
	}
	if viewIndex < 0 || viewIndex >= len(p.document.BufferViews) {
		return nil, errors.Errorf("buffer view %d out of range", viewIndex)
	}
	bv := &p.document.BufferViews[viewIndex]
	if bv.Buffer < 0 || bv.Buffer >= len(p.document.Buffers) {
		return nil, errors.Errorf("buffer view %d references missing buffer %d", viewIndex, bv.Buffer)
	}
	data := p.document.Buffers[bv.Buffer].Data
	end := bv.ByteOffset + bv.ByteLength
	if bv.ByteOffset < 0 || end > len(data) {
		return nil, errors.Wrapf(errBufferSizeMismatch, "buffer view %d", viewIndex)
	}
	return data[bv.ByteOffset:end], nil
}

// accessor validates an accessor index and returns the accessor and its element bytes,
// de-interleaved into one tightly packed slice.
func (p *gltfParserImpl) accessor(index int) (*gltfAccessor, []byte, error) {
	if p.document == nil {
		return nil, nil, errNoDocument
	}
	if index < 0 || index >= len(p.document.Accessors) {
		return nil, nil, errors.Errorf("accessor index %d out of range", index)
	}
	acc := &p.document.Accessors[index]
	if acc.Sparse != nil {
		return nil, nil, errors.Errorf("accessor %d: sparse accessors are not supported", index)
	}
	if acc.BufferView == nil {
		return nil, nil, errors.Errorf("accessor %d has no buffer view", index)
	}

	view, err := p.ReadBufferView(*acc.BufferView)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "accessor %d", index)
	}

	elementSize := gltfComponentTypeSize(acc.ComponentType) * gltfAccessorTypeComponentCount(acc.Type)
	if elementSize == 0 {
		return nil, nil, errors.Errorf("accessor %d: unsupported layout %s/%d", index, acc.Type, acc.ComponentType)
	}
	stride := elementSize
	if bv := p.document.BufferViews[*acc.BufferView]; bv.ByteStride != nil && *bv.ByteStride > 0 {
		stride = *bv.ByteStride
	}
	if acc.Count > 0 && acc.ByteOffset+(acc.Count-1)*stride+elementSize > len(view) {
		return nil, nil, errors.Wrapf(errBufferSizeMismatch, "accessor %d", index)
	}

	out := make([]byte, acc.Count*elementSize)
	for i := 0; i < acc.Count; i++ {
		src := acc.ByteOffset + i*stride
		copy(out[i*elementSize:(i+1)*elementSize], view[src:src+elementSize])
	}
	return acc, out, nil
}

// floats decodes n-component elements to float32, normalizing integer components when the
// accessor says so.
func (p *gltfParserImpl) floats(index int, accType string) (*gltfAccessor, []float32, error) {
	acc, data, err := p.accessor(index)
	if err != nil {
		return nil, nil, err
	}
	if acc.Type != accType {
		return nil, nil, errors.Errorf("accessor %d is %s, want %s", index, acc.Type, accType)
	}
	if acc.ComponentType != gltfComponentTypeFloat && !acc.Normalized {
		return nil, nil, errors.Errorf("accessor %d: component type %d is neither float nor normalized", index, acc.ComponentType)
	}

	size := gltfComponentTypeSize(acc.ComponentType)
	out := make([]float32, len(data)/size)
	for i := range out {
		b := data[i*size:]
		switch acc.ComponentType {
		case gltfComponentTypeFloat:
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b))
		case gltfComponentTypeUnsignedByte:
			out[i] = float32(b[0]) / math.MaxUint8
		case gltfComponentTypeByte:
			out[i] = max(float32(int8(b[0]))/math.MaxInt8, -1)
		case gltfComponentTypeUnsignedShort:
			out[i] = float32(binary.LittleEndian.Uint16(b)) / math.MaxUint16
		case gltfComponentTypeShort:
			out[i] = max(float32(int16(binary.LittleEndian.Uint16(b)))/math.MaxInt16, -1)
		default:
			return nil, nil, errors.Errorf("accessor %d: unsupported normalized component type %d", index, acc.ComponentType)
		}
	}
	return acc, out, nil
}

func (p *gltfParserImpl) ReadVec2Accessor(accessorIndex int) ([][2]float32, error) {
	acc, f, err := p.floats(accessorIndex, gltfAccessorTypeVec2)
	if err != nil {
		return nil, err
	}
	out := make([][2]float32, acc.Count)
	for i := range out {
		out[i] = [2]float32{f[i*2], f[i*2+1]}
	}
	return out, nil
}

func (p *gltfParserImpl) ReadVec3Accessor(accessorIndex int) ([][3]float32, error) {
	acc, f, err := p.floats(accessorIndex, gltfAccessorTypeVec3)
	if err != nil {
		return nil, err
	}
	if acc.ComponentType != gltfComponentTypeFloat {
		return nil, errors.Errorf("accessor %d is not VEC3 FLOAT", accessorIndex)
	}
	out := make([][3]float32, acc.Count)
	for i := range out {
		out[i] = [3]float32{f[i*3], f[i*3+1], f[i*3+2]}
	}
	return out, nil
}

func (p *gltfParserImpl) ReadIndicesAccessor(accessorIndex int) ([]uint32, error) {
	acc, data, err := p.accessor(accessorIndex)
	if err != nil {
		return nil, err
	}
	if acc.Type != gltfAccessorTypeScalar {
		return nil, errors.Errorf("index accessor %d is %s, want SCALAR", accessorIndex, acc.Type)
	}

	out := make([]uint32, acc.Count)
	switch acc.ComponentType {
	case gltfComponentTypeUnsignedByte:
		for i := range out {
			out[i] = uint32(data[i])
		}
	case gltfComponentTypeUnsignedShort:
		for i := range out {
			out[i] = uint32(binary.LittleEndian.Uint16(data[i*2:]))
		}
	case gltfComponentTypeUnsignedInt:
		for i := range out {
			out[i] = binary.LittleEndian.Uint32(data[i*4:])
		}
	default:
		return nil, errors.Errorf("unsupported index component type %d", acc.ComponentType)
	}
	return out, nil
}

func gltfComponentTypeSize(componentType int) int {
	switch componentType {
	case gltfComponentTypeByte, gltfComponentTypeUnsignedByte:
		return 1
	case gltfComponentTypeShort, gltfComponentTypeUnsignedShort:
		return 2
	case gltfComponentTypeUnsignedInt, gltfComponentTypeFloat:
		return 4
	default:
		return 0
	}
}

func gltfAccessorTypeComponentCount(accessorType string) int {
	switch accessorType {
	case gltfAccessorTypeScalar:
		return 1
	case gltfAccessorTypeVec2:
		return 2
	case gltfAccessorTypeVec3:
		return 3
	case gltfAccessorTypeVec4:
		return 4
	default:
		return 0
	}
}
