package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	name        string
	kind        Kind
	clearFlags  ClearFlags
	background  common.Color
	cullingMask uint32
	depth       float32
	enabled     bool

	up mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	position             mgl32.Vec3
	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4

	controller CameraController
}

// Camera defines the interface for the camera system.
// The camera holds perspective settings plus the clear and culling configuration
// the render pipeline reads each frame. View and projection matrices are rebuilt
// from an attached CameraController via Update().
//
// Projection matrices use the OpenGL clip convention (depth in [-1, 1]);
// GPU uploads remap depth through ToGPUCameraUniform.
type Camera interface {
	// Name returns the camera name used in logs and profiler samples.
	//
	// Returns:
	//   - string: the camera name
	Name() string

	// Kind returns what the camera renders for.
	//
	// Returns:
	//   - Kind: the camera kind
	Kind() Kind

	// ClearFlags returns what the camera clears before drawing.
	//
	// Returns:
	//   - ClearFlags: the clear flags
	ClearFlags() ClearFlags

	// BackgroundColor returns the color used when ClearFlags is ClearFlagsColor.
	//
	// Returns:
	//   - common.Color: the background color
	BackgroundColor() common.Color

	// CullingMask returns the layer mask of renderers and lights this camera sees.
	//
	// Returns:
	//   - uint32: the layer bit mask
	CullingMask() uint32

	// Depth returns the camera's draw order. Lower depths render first.
	//
	// Returns:
	//   - float32: the draw order
	Depth() float32

	// Enabled returns whether the camera takes part in rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Position returns the world-space eye position captured on the last Update.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Position() mgl32.Vec3

	// ViewMatrix returns the current view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the combined Projection * View matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// Controller returns the attached CameraController.
	// Returns nil if no controller is attached.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// Update reads position/target from the controller and recomputes matrices.
	// Should be called once per frame. Without a controller only the projection is refreshed.
	Update()

	// SetClearFlags sets what the camera clears before drawing.
	//
	// Parameters:
	//   - flags: the clear flags
	SetClearFlags(flags ClearFlags)

	// SetBackgroundColor sets the clear color.
	//
	// Parameters:
	//   - c: the background color
	SetBackgroundColor(c common.Color)

	// SetEnabled enables or disables the camera.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetFov sets the field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// SetLookAt places the camera directly, bypassing the controller until the next Update.
	//
	// Parameters:
	//   - eye: the eye position
	//   - target: the look-at point
	SetLookAt(eye, target mgl32.Vec3)

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new game Camera with default perspective settings that clears
// to the skybox and sees every layer.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:          &sync.Mutex{},
		name:        "Main Camera",
		kind:        KindGame,
		clearFlags:  ClearFlagsSkybox,
		background:  common.Color{0.19, 0.3, 0.47, 1},
		cullingMask: ^uint32(0),
		enabled:     true,
		up:          mgl32.Vec3{0, 1, 0},
		fov:         45.0 * (math.Pi / 180.0),
		aspect:      1.0,
		near:        0.1,
		far:         100.0,
		position:    mgl32.Vec3{0, 0, 0},
		viewMatrix:  mgl32.Ident4(),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

func (c *cameraImpl) Kind() Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kind
}

func (c *cameraImpl) ClearFlags() ClearFlags {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clearFlags
}

func (c *cameraImpl) BackgroundColor() common.Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.background
}

func (c *cameraImpl) CullingMask() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cullingMask
}

func (c *cameraImpl) Depth() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.depth
}

func (c *cameraImpl) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) SetClearFlags(flags ClearFlags) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearFlags = flags
}

func (c *cameraImpl) SetBackgroundColor(col common.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.background = col
}

func (c *cameraImpl) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetLookAt(eye, target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookAt(eye, target)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection and view-projection matrices.
// The view is only rebuilt when a controller is attached. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.controller != nil {
		c.lookAt(c.controller.Position(), c.controller.Target())
	}
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}

// lookAt rebuilds the view matrix. Caller must hold the mutex.
func (c *cameraImpl) lookAt(eye, target mgl32.Vec3) {
	c.position = eye
	c.viewMatrix = mgl32.LookAtV(eye, target, c.up)
}
