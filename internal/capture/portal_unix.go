//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/example/photocanvas/internal/imageio"
)

const (
	portalDest     = "org.freedesktop.portal.Desktop"
	portalPath     = "/org/freedesktop/portal/desktop"
	portalRequest  = "org.freedesktop.portal.Request"
	portalResponse = portalRequest + ".Response"
)

var portalHandleToken = func() string {
	return fmt.Sprintf("photocanvas_%d", time.Now().UnixNano())
}

// PortalSource grabs a photo through the xdg-desktop-portal Screenshot
// interface. Interactive lets the user pick what to capture.
type PortalSource struct {
	Interactive bool
}

// Grab asks the portal for a picture and waits for its response.
func (p PortalSource) Grab(ctx context.Context) (*image.RGBA, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Printf("dbus close: %v", cerr)
		}
	}()

	sigc := make(chan *dbus.Signal, 4)
	conn.Signal(sigc)
	defer conn.RemoveSignal(sigc)

	obj := conn.Object(portalDest, portalPath)
	call := obj.CallWithContext(ctx, "org.freedesktop.portal.Screenshot.Screenshot", 0, "", portalOptions(p.Interactive))
	if call.Err != nil {
		return nil, fmt.Errorf("portal screenshot call: %w", call.Err)
	}
	var handle dbus.ObjectPath
	if err := call.Store(&handle); err != nil {
		return nil, fmt.Errorf("portal screenshot response: %w", err)
	}

	rule := fmt.Sprintf("type='signal',interface='%s',member='Response',path='%s'", portalRequest, handle)
	if err := conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		return nil, fmt.Errorf("portal screenshot subscribe: %w", err)
	}
	defer conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, rule)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case sig, ok := <-sigc:
			if !ok {
				return nil, fmt.Errorf("portal screenshot: connection closed")
			}
			if sig.Path != handle || sig.Name != portalResponse {
				continue
			}
			uri, err := portalResult(sig.Body)
			if err != nil {
				return nil, err
			}
			return loadPortalImage(uri)
		}
	}
}

func portalOptions(interactive bool) map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"interactive":  dbus.MakeVariant(interactive),
		"modal":        dbus.MakeVariant(interactive),
		"handle_token": dbus.MakeVariant(portalHandleToken()),
	}
}

// portalResult extracts the picture URI from a Request.Response body.
func portalResult(body []interface{}) (string, error) {
	if len(body) < 2 {
		return "", fmt.Errorf("portal screenshot: malformed response")
	}
	code, ok := body[0].(uint32)
	if !ok {
		return "", fmt.Errorf("portal screenshot: malformed response code")
	}
	switch code {
	case 0:
	case 1:
		return "", ErrCancelled
	default:
		return "", fmt.Errorf("portal screenshot: request failed with code %d", code)
	}
	res, ok := body[1].(map[string]dbus.Variant)
	if !ok {
		return "", fmt.Errorf("portal screenshot: malformed results")
	}
	v, ok := res["uri"]
	if !ok {
		return "", fmt.Errorf("portal screenshot: response missing image data")
	}
	uri, ok := v.Value().(string)
	if !ok || uri == "" {
		return "", fmt.Errorf("portal screenshot: response missing image data")
	}
	return uri, nil
}

func loadPortalImage(uri string) (*image.RGBA, error) {
	img, err := imageio.OpenImage(uri)
	if err != nil {
		return nil, fmt.Errorf("portal screenshot image: %w", err)
	}
	if path, err := imageio.ResolveHandle(uri); err == nil {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("remove %s: %v", path, err)
		}
	}
	return img, nil
}
