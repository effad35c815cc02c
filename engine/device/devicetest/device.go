// Package devicetest provides an in-memory device.Device for tests. It hands
// out handles, counts creates and destroys, mirrors the binding state a GL
// context would hold, and records uniform writes and draw calls.
package devicetest

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/device"

	"github.com/pkg/errors"
)

// Kind names a class of GPU object.
type Kind string

const (
	KindVertexArray Kind = "vertex_array"
	KindBuffer      Kind = "buffer"
	KindShader      Kind = "shader"
	KindProgram     Kind = "program"
	KindTexture     Kind = "texture"
	KindFramebuffer Kind = "framebuffer"
)

// AttribPointer is one recorded VertexAttribPointer call.
type AttribPointer struct {
	Index   uint32
	Count   int
	Type    device.ScalarType
	Stride  int
	Offset  int
	Enabled bool
}

// UniformWrite is one recorded uniform upload.
type UniformWrite struct {
	Program uint32
	Name    string
	Value   any
}

// DrawCall is one recorded DrawElements or DrawArrays call together with the
// bindings that were current when it was issued.
type DrawCall struct {
	Indexed     bool
	Mode        device.Primitive
	Count       int
	First       int
	IndexType   device.IndexType
	VertexArray uint32
	Program     uint32
	Framebuffer uint32
	Viewport    [4]int
	Textures    map[uint32]uint32
	DepthWrite  bool
	DepthFn     device.DepthFunc
}

// TextureState is everything uploaded to one texture object.
type TextureState struct {
	Target  device.TextureTarget
	Images  map[device.TextureTarget]device.TextureImage
	Params  map[device.TextureParam]device.TextureParamValue
	Mipmaps bool
}

// FramebufferState is the attachment configuration of one framebuffer.
type FramebufferState struct {
	Attachments map[device.Attachment]uint32
	DrawBuffers []device.Attachment
}

type uniformRef struct {
	program uint32
	name    string
}

// Device is the fake. The zero value is not usable; call New.
type Device struct {
	next uint32

	live      map[Kind]map[uint32]bool
	Created   map[Kind]int
	Destroyed map[Kind]int

	// DoubleFrees counts deletes of handles that were not live.
	DoubleFrees int

	BoundVertexArray uint32
	BoundFramebuffer uint32
	CurrentProgram   uint32
	ActiveUnit       uint32
	UnitTextures     map[uint32]uint32
	BoundBuffers     map[device.BufferTarget]uint32

	// ElementBuffers maps a vertex array to the element buffer captured while it was bound.
	ElementBuffers map[uint32]uint32
	BufferContents map[uint32][]byte
	Attributes     map[uint32][]AttribPointer
	Textures       map[uint32]*TextureState
	Framebuffers   map[uint32]*FramebufferState

	ViewportRect [4]int
	ClearRGBA    [4]float32
	DepthWrite   bool
	DepthFn      device.DepthFunc
	Enabled      map[device.Capability]bool

	Uniforms []UniformWrite
	Draws    []DrawCall
	Calls    []string

	// FailCompile injects a compile error log per stage.
	FailCompile map[device.ShaderStage]string
	// FailLink injects a link error log when non-empty.
	FailLink string
	// Incomplete makes CheckFramebufferStatus fail.
	Incomplete bool
	// UnknownUniforms lists names UniformLocation reports as -1.
	UnknownUniforms map[string]bool
	// PendingErrors are returned one by one from Error.
	PendingErrors []error

	locations    map[uniformRef]int32
	locationRefs map[int32]uniformRef
	shaderStages map[uint32]device.ShaderStage
}

var _ device.Device = &Device{}

// New returns an empty fake device.
func New() *Device {
	return &Device{
		live:            make(map[Kind]map[uint32]bool),
		Created:         make(map[Kind]int),
		Destroyed:       make(map[Kind]int),
		UnitTextures:    make(map[uint32]uint32),
		BoundBuffers:    make(map[device.BufferTarget]uint32),
		ElementBuffers:  make(map[uint32]uint32),
		BufferContents:  make(map[uint32][]byte),
		Attributes:      make(map[uint32][]AttribPointer),
		Textures:        make(map[uint32]*TextureState),
		Framebuffers:    make(map[uint32]*FramebufferState),
		Enabled:         make(map[device.Capability]bool),
		DepthWrite:      true,
		FailCompile:     make(map[device.ShaderStage]string),
		UnknownUniforms: make(map[string]bool),
		locations:       make(map[uniformRef]int32),
		locationRefs:    make(map[int32]uniformRef),
		shaderStages:    make(map[uint32]device.ShaderStage),
	}
}

// Live returns the number of live handles of kind k.
func (d *Device) Live(k Kind) int {
	return len(d.live[k])
}

// IsLive reports whether id is a live handle of kind k.
func (d *Device) IsLive(k Kind, id uint32) bool {
	return d.live[k][id]
}

// Balanced reports whether every created handle was destroyed exactly once.
func (d *Device) Balanced() bool {
	if d.DoubleFrees != 0 {
		return false
	}
	for k, n := range d.Created {
		if d.Destroyed[k] != n || len(d.live[k]) != 0 {
			return false
		}
	}
	return true
}

// UniformValue returns the last value written to name while program was active.
func (d *Device) UniformValue(program uint32, name string) (any, bool) {
	for i := len(d.Uniforms) - 1; i >= 0; i-- {
		u := d.Uniforms[i]
		if u.Program == program && u.Name == name {
			return u.Value, true
		}
	}
	return nil, false
}

// ResetRecords clears recorded uniforms, draws and calls but keeps all state.
func (d *Device) ResetRecords() {
	d.Uniforms = nil
	d.Draws = nil
	d.Calls = nil
}

func (d *Device) logf(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *Device) create(k Kind) uint32 {
	d.next++
	if d.live[k] == nil {
		d.live[k] = make(map[uint32]bool)
	}
	d.live[k][d.next] = true
	d.Created[k]++
	return d.next
}

func (d *Device) destroy(k Kind, id uint32) {
	if id == 0 {
		return
	}
	if !d.live[k][id] {
		d.DoubleFrees++
		return
	}
	delete(d.live[k], id)
	d.Destroyed[k]++
}

func (d *Device) CreateVertexArray() uint32 {
	id := d.create(KindVertexArray)
	d.logf("CreateVertexArray %d", id)
	return id
}

func (d *Device) DeleteVertexArray(id uint32) {
	d.logf("DeleteVertexArray %d", id)
	d.destroy(KindVertexArray, id)
	if d.BoundVertexArray == id {
		d.BoundVertexArray = 0
	}
}

func (d *Device) BindVertexArray(id uint32) {
	d.logf("BindVertexArray %d", id)
	d.BoundVertexArray = id
	if id != 0 {
		d.BoundBuffers[device.BufferTargetElementArray] = d.ElementBuffers[id]
	}
}

func (d *Device) CreateBuffer() uint32 {
	id := d.create(KindBuffer)
	d.logf("CreateBuffer %d", id)
	return id
}

func (d *Device) DeleteBuffer(id uint32) {
	d.logf("DeleteBuffer %d", id)
	d.destroy(KindBuffer, id)
	delete(d.BufferContents, id)
}

func (d *Device) BindBuffer(target device.BufferTarget, id uint32) {
	d.logf("BindBuffer %d %d", target, id)
	d.BoundBuffers[target] = id
	if target == device.BufferTargetElementArray && d.BoundVertexArray != 0 {
		d.ElementBuffers[d.BoundVertexArray] = id
	}
}

func (d *Device) BufferData(target device.BufferTarget, size int, data []byte) {
	id := d.BoundBuffers[target]
	d.logf("BufferData %d %d", target, size)
	buf := make([]byte, size)
	copy(buf, data)
	d.BufferContents[id] = buf
}

func (d *Device) BufferSubData(target device.BufferTarget, offset int, data []byte) {
	id := d.BoundBuffers[target]
	d.logf("BufferSubData %d %d %d", target, offset, len(data))
	copy(d.BufferContents[id][offset:], data)
}

func (d *Device) VertexAttribPointer(index uint32, count int, typ device.ScalarType, stride, offset int) {
	d.logf("VertexAttribPointer %d %d %d %d", index, count, stride, offset)
	vao := d.BoundVertexArray
	d.Attributes[vao] = append(d.Attributes[vao], AttribPointer{
		Index:  index,
		Count:  count,
		Type:   typ,
		Stride: stride,
		Offset: offset,
	})
}

func (d *Device) EnableVertexAttribArray(index uint32) {
	d.logf("EnableVertexAttribArray %d", index)
	attrs := d.Attributes[d.BoundVertexArray]
	for i := range attrs {
		if attrs[i].Index == index {
			attrs[i].Enabled = true
		}
	}
}

func (d *Device) CreateShader(stage device.ShaderStage) uint32 {
	id := d.create(KindShader)
	d.shaderStages[id] = stage
	d.logf("CreateShader %s %d", stage, id)
	return id
}

func (d *Device) CompileShader(id uint32, source string) error {
	d.logf("CompileShader %d", id)
	if log, ok := d.FailCompile[d.shaderStages[id]]; ok {
		return errors.New(log)
	}
	return nil
}

func (d *Device) DeleteShader(id uint32) {
	d.logf("DeleteShader %d", id)
	d.destroy(KindShader, id)
}

func (d *Device) CreateProgram() uint32 {
	id := d.create(KindProgram)
	d.logf("CreateProgram %d", id)
	return id
}

func (d *Device) AttachShader(program, shader uint32) {
	d.logf("AttachShader %d %d", program, shader)
}

func (d *Device) LinkProgram(program uint32) error {
	d.logf("LinkProgram %d", program)
	if d.FailLink != "" {
		return errors.New(d.FailLink)
	}
	return nil
}

func (d *Device) DeleteProgram(id uint32) {
	d.logf("DeleteProgram %d", id)
	d.destroy(KindProgram, id)
	if d.CurrentProgram == id {
		d.CurrentProgram = 0
	}
}

func (d *Device) UseProgram(id uint32) {
	d.logf("UseProgram %d", id)
	d.CurrentProgram = id
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	if d.UnknownUniforms[name] {
		return -1
	}
	ref := uniformRef{program: program, name: name}
	if loc, ok := d.locations[ref]; ok {
		return loc
	}
	loc := int32(len(d.locations))
	d.locations[ref] = loc
	d.locationRefs[loc] = ref
	return loc
}

func (d *Device) writeUniform(location int32, value any) {
	ref, ok := d.locationRefs[location]
	if !ok {
		return
	}
	d.logf("Uniform %s", ref.name)
	d.Uniforms = append(d.Uniforms, UniformWrite{Program: d.CurrentProgram, Name: ref.name, Value: value})
}

func (d *Device) Uniform1i(location int32, v int32) {
	d.writeUniform(location, v)
}

func (d *Device) Uniform1ui(location int32, v uint32) {
	d.writeUniform(location, v)
}

func (d *Device) Uniform1f(location int32, v float32) {
	d.writeUniform(location, v)
}

func (d *Device) Uniform3f(location int32, v [3]float32) {
	d.writeUniform(location, v)
}

func (d *Device) UniformMatrix4f(location int32, m [16]float32) {
	d.writeUniform(location, m)
}

func (d *Device) CreateTexture() uint32 {
	id := d.create(KindTexture)
	d.Textures[id] = &TextureState{
		Images: make(map[device.TextureTarget]device.TextureImage),
		Params: make(map[device.TextureParam]device.TextureParamValue),
	}
	d.logf("CreateTexture %d", id)
	return id
}

func (d *Device) DeleteTexture(id uint32) {
	d.logf("DeleteTexture %d", id)
	d.destroy(KindTexture, id)
	for unit, tex := range d.UnitTextures {
		if tex == id {
			d.UnitTextures[unit] = 0
		}
	}
}

func (d *Device) ActiveTexture(unit uint32) {
	d.logf("ActiveTexture %d", unit)
	d.ActiveUnit = unit
}

func (d *Device) BindTexture(target device.TextureTarget, id uint32) {
	d.logf("BindTexture %d %d", target, id)
	d.UnitTextures[d.ActiveUnit] = id
	if st, ok := d.Textures[id]; ok {
		st.Target = target
	}
}

func (d *Device) boundTexture() *TextureState {
	return d.Textures[d.UnitTextures[d.ActiveUnit]]
}

func (d *Device) TexImage2D(img device.TextureImage) {
	d.logf("TexImage2D %d %dx%d", img.Target, img.Width, img.Height)
	if st := d.boundTexture(); st != nil {
		st.Images[img.Target] = img
	}
}

func (d *Device) TexParameter(target device.TextureTarget, param device.TextureParam, value device.TextureParamValue) {
	d.logf("TexParameter %d %d %d", target, param, value)
	if st := d.boundTexture(); st != nil {
		st.Params[param] = value
	}
}

func (d *Device) GenerateMipmap(target device.TextureTarget) {
	d.logf("GenerateMipmap %d", target)
	if st := d.boundTexture(); st != nil {
		st.Mipmaps = true
	}
}

func (d *Device) CreateFramebuffer() uint32 {
	id := d.create(KindFramebuffer)
	d.Framebuffers[id] = &FramebufferState{Attachments: make(map[device.Attachment]uint32)}
	d.logf("CreateFramebuffer %d", id)
	return id
}

func (d *Device) DeleteFramebuffer(id uint32) {
	d.logf("DeleteFramebuffer %d", id)
	d.destroy(KindFramebuffer, id)
	if d.BoundFramebuffer == id {
		d.BoundFramebuffer = 0
	}
}

func (d *Device) BindFramebuffer(id uint32) {
	d.logf("BindFramebuffer %d", id)
	d.BoundFramebuffer = id
}

func (d *Device) FramebufferTexture2D(attachment device.Attachment, texture uint32) {
	d.logf("FramebufferTexture2D %d %d", attachment, texture)
	if fb, ok := d.Framebuffers[d.BoundFramebuffer]; ok {
		fb.Attachments[attachment] = texture
	}
}

func (d *Device) DrawBuffers(attachments []device.Attachment) {
	d.logf("DrawBuffers %v", attachments)
	if fb, ok := d.Framebuffers[d.BoundFramebuffer]; ok {
		fb.DrawBuffers = append([]device.Attachment(nil), attachments...)
	}
}

func (d *Device) CheckFramebufferStatus() error {
	if d.Incomplete {
		return errors.New("framebuffer incomplete")
	}
	return nil
}

func (d *Device) Viewport(x, y, width, height int) {
	d.logf("Viewport %d %d %d %d", x, y, width, height)
	d.ViewportRect = [4]int{x, y, width, height}
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.ClearRGBA = [4]float32{r, g, b, a}
}

func (d *Device) Clear(mask device.ClearMask) {
	d.logf("Clear %d", mask)
}

func (d *Device) Enable(c device.Capability) {
	d.logf("Enable %d", c)
	d.Enabled[c] = true
}

func (d *Device) Disable(c device.Capability) {
	d.logf("Disable %d", c)
	d.Enabled[c] = false
}

func (d *Device) DepthMask(write bool) {
	d.logf("DepthMask %t", write)
	d.DepthWrite = write
}

func (d *Device) DepthFunc(f device.DepthFunc) {
	d.logf("DepthFunc %d", f)
	d.DepthFn = f
}

func (d *Device) record(call DrawCall) {
	call.VertexArray = d.BoundVertexArray
	call.Program = d.CurrentProgram
	call.Framebuffer = d.BoundFramebuffer
	call.Viewport = d.ViewportRect
	call.DepthWrite = d.DepthWrite
	call.DepthFn = d.DepthFn
	call.Textures = make(map[uint32]uint32, len(d.UnitTextures))
	for unit, tex := range d.UnitTextures {
		if tex != 0 {
			call.Textures[unit] = tex
		}
	}
	d.Draws = append(d.Draws, call)
}

func (d *Device) DrawElements(mode device.Primitive, count int, typ device.IndexType) {
	d.logf("DrawElements %d %d", mode, count)
	d.record(DrawCall{Indexed: true, Mode: mode, Count: count, IndexType: typ})
}

func (d *Device) DrawArrays(mode device.Primitive, first, count int) {
	d.logf("DrawArrays %d %d %d", mode, first, count)
	d.record(DrawCall{Mode: mode, First: first, Count: count})
}

func (d *Device) Error() error {
	if len(d.PendingErrors) == 0 {
		return nil
	}
	err := d.PendingErrors[0]
	d.PendingErrors = d.PendingErrors[1:]
	return err
}
