package nav

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// CameraPermissionMessage is shown in place of the capture screen when the
// camera was not granted.
const CameraPermissionMessage = "Camera permission is required"

// ErrCameraPermission is returned by Shell.Run without a camera grant.
var ErrCameraPermission = errors.New("camera permission is required")

// ErrBack is returned by an edit screen to go back to the camera.
var ErrBack = errors.New("navigate back")

// CaptureFunc runs the capture screen and returns the new photo's handle.
type CaptureFunc func(ctx context.Context) (string, error)

// EditFunc runs the edit screen for handle.
type EditFunc func(ctx context.Context, handle string, storageGranted bool) error

// Shell wires the capture destination to the edit destination.
type Shell struct {
	Grants  Grants
	Capture CaptureFunc
	Edit    EditFunc

	// Navigate, when set, observes every route the shell visits.
	Navigate func(route string)
}

// Run starts at the camera route. An edit screen returning ErrBack sends
// the shell back to the camera; any other result ends the run.
func (s *Shell) Run(ctx context.Context) error {
	if s.Capture == nil || s.Edit == nil {
		return fmt.Errorf("nav: shell needs both capture and edit screens")
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.visit(RouteCamera)
		if !s.Grants.CameraGranted() {
			log.Print(CameraPermissionMessage)
			return ErrCameraPermission
		}
		handle, err := s.Capture(ctx)
		if err != nil {
			return fmt.Errorf("capture screen: %w", err)
		}
		route := EditRoute(handle)
		s.visit(route)
		r, err := Parse(route)
		if err != nil {
			return err
		}
		err = s.Edit(ctx, r.Handle, s.Grants.StorageGranted())
		if errors.Is(err, ErrBack) {
			continue
		}
		if err != nil {
			return fmt.Errorf("edit screen: %w", err)
		}
		return nil
	}
}

func (s *Shell) visit(route string) {
	if s.Navigate != nil {
		s.Navigate(route)
	}
}
