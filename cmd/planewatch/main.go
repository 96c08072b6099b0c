// Plane Watch - prints the focus plane stream of a running simulator
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"

	"github.com/teslashibe/go-focusplane/internal/config"
	"github.com/teslashibe/go-focusplane/internal/httpc"
	"github.com/teslashibe/go-focusplane/pkg/focus"
	"github.com/teslashibe/go-focusplane/pkg/protocol"
)

func main() {
	url := flag.String("url", config.PlaneStreamURL(config.DefaultDashboardPort), "Plane stream websocket URL")
	api := flag.String("api", config.DashboardURL(config.DefaultDashboardPort), "Dashboard REST base URL")
	mode := flag.String("mode", "", "Switch the estimator mode before watching: override, gaze, fixed")
	flag.Parse()

	ctx := context.Background()
	if err := describeSession(ctx, *api, *mode); err != nil {
		fmt.Printf("⚠️  Dashboard API: %v\n", err)
	}

	fmt.Printf("🔭 Connecting to %s\n", *url)
	ws, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		fmt.Printf("❌ Failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer ws.Close()

	// Handle Ctrl+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		ws.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		ws.Close()
	}()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				fmt.Printf("👋 Stream closed: %v\n", err)
			}
			return
		}

		msg, err := protocol.ParseMessage(data)
		if err != nil {
			fmt.Printf("⚠️  Bad message: %v\n", err)
			continue
		}
		if msg.Type != protocol.TypePlane {
			continue
		}

		plane, err := msg.GetPlaneData()
		if err != nil {
			fmt.Printf("⚠️  Bad plane: %v\n", err)
			continue
		}
		fmt.Println(formatPlane(plane))
	}
}

// describeSession prints the session and tuning, switching mode first if set
func describeSession(ctx context.Context, api, mode string) error {
	var session struct {
		ID     string `json:"id"`
		Frames uint64 `json:"frames"`
	}
	if err := httpc.GetJSON(ctx, api+"/api/session", &session); err != nil {
		return err
	}
	fmt.Printf("📋 Session %s (%d frames)\n", session.ID, session.Frames)

	var tuning focus.TuningParams
	if mode != "" {
		if err := httpc.PutJSON(ctx, api+"/api/tuning", focus.TuningParams{Mode: mode}, &tuning); err != nil {
			return err
		}
	} else if err := httpc.GetJSON(ctx, api+"/api/tuning", &tuning); err != nil {
		return err
	}
	fmt.Printf("🎛️  mode=%s closer=%g farther=%g default=%g\n",
		tuning.Mode, tuning.LerpPowerCloser, tuning.LerpPowerFarther, tuning.DefaultPlaneDistance)
	return nil
}

// formatPlane renders one plane as a single line
func formatPlane(p *protocol.PlaneData) string {
	return fmt.Sprintf("#%-6d %-8s d=%6.3f pos=(%6.3f %6.3f %6.3f) n=(%5.2f %5.2f %5.2f) v=(%6.3f %6.3f %6.3f)",
		p.Frame, p.Mode, p.Distance,
		p.Position.X, p.Position.Y, p.Position.Z,
		p.Normal.X, p.Normal.Y, p.Normal.Z,
		p.Velocity.X, p.Velocity.Y, p.Velocity.Z,
	)
}
