package ipc

import "switchyard/internal/overlay"

// StatusRequest asks for session state.
type StatusRequest struct{}

// StatusResponse reports session state.
type StatusResponse struct {
	Running      bool     `json:"running"`
	UptimeMillis int64    `json:"uptime_millis"`
	Ticks        uint64   `json:"ticks"`
	Layout       string   `json:"layout"`
	Staged       []string `json:"staged"`
	Sources      int      `json:"sources"`
	Taps         int      `json:"taps"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	FPS          int      `json:"fps"`
	Hotplug      bool     `json:"hotplug"`
	LastEvent    string   `json:"last_event,omitempty"`
}

// SourcesRequest asks for the source list.
type SourcesRequest struct{}

// SourceRow is one source in a SourcesResponse.
type SourceRow struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Label    string `json:"label"`
	Muted    bool   `json:"muted"`
	Blur     bool   `json:"blur"`
	HasAudio bool   `json:"has_audio"`
	HasVideo bool   `json:"has_video"`
	Staged   bool   `json:"staged"`
}

// SourcesResponse lists registered sources.
type SourcesResponse struct {
	Sources []SourceRow `json:"sources"`
}

// TapsRequest asks for the mix-bus connections.
type TapsRequest struct{}

// TapRow is one mix-bus tap in a TapsResponse.
type TapRow struct {
	SourceID string  `json:"source_id"`
	Label    string  `json:"label"`
	Gain     float64 `json:"gain"`
	Live     bool    `json:"live"`
}

// TapsResponse lists mix-bus taps.
type TapsResponse struct {
	Taps []TapRow `json:"taps"`
}

// SetLayoutRequest switches the layout mode.
type SetLayoutRequest struct {
	Mode string `json:"mode"`
}

// SetLayoutResponse confirms the applied mode.
type SetLayoutResponse struct {
	Layout string `json:"layout"`
}

// SetStageRequest replaces the staged source ids.
type SetStageRequest struct {
	IDs []string `json:"ids"`
}

// SetStageResponse confirms the staged set.
type SetStageResponse struct {
	Staged []string `json:"staged"`
}

// SetMutedRequest toggles a source's mute flag.
type SetMutedRequest struct {
	ID    string `json:"id"`
	Muted bool   `json:"muted"`
}

// SetBlurRequest toggles a source's blur flag.
type SetBlurRequest struct {
	ID   string `json:"id"`
	Blur bool   `json:"blur"`
}

// SetGainRequest adjusts the mix gain of a staged source's tap.
type SetGainRequest struct {
	ID   string  `json:"id"`
	Gain float64 `json:"gain"`
}

// AckResponse acknowledges a mutation with no payload.
type AckResponse struct {
	OK bool `json:"ok"`
}

// OverlayGetRequest asks for the overlay settings snapshot.
type OverlayGetRequest struct{}

// OverlayGetResponse carries the overlay settings snapshot.
type OverlayGetResponse struct {
	Settings overlay.Settings `json:"settings"`
}

// OverlaySetRequest replaces the overlay settings wholesale.
type OverlaySetRequest struct {
	Settings overlay.Settings `json:"settings"`
}

// OverlayToggleRequest flips one element's visibility.
type OverlayToggleRequest struct {
	Element string `json:"element"`
	Show    bool   `json:"show"`
}

// SnapshotRequest writes the latest program frame to a file.
type SnapshotRequest struct {
	Path string `json:"path"`
}

// SnapshotResponse confirms where the snapshot landed.
type SnapshotResponse struct {
	Path string `json:"path"`
}

// StopRequest asks the process to shut down.
type StopRequest struct{}

// StopResponse confirms shutdown was initiated.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}
