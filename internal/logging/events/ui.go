package events

import "github.com/atomicstack/zkbrowse/internal/logging"

type NavTracer struct{}

type UITracer struct{}

var (
	Nav = NavTracer{}
	UI  = UITracer{}
)

func (NavTracer) Cursor(path string, selected int) {
	logging.Trace("nav.cursor", map[string]interface{}{"path": path, "selected": selected})
}

func (NavTracer) Descend(path string) {
	logging.Trace("nav.descend", map[string]interface{}{"path": path})
}

func (NavTracer) Ascend(path string) {
	logging.Trace("nav.ascend", map[string]interface{}{"path": path})
}

func (NavTracer) Listed(path string, children int) {
	logging.Trace("nav.listed", map[string]interface{}{"path": path, "children": children})
}

func (NavTracer) Read(path string, size int) {
	logging.Trace("nav.read", map[string]interface{}{"path": path, "bytes": size})
}

func (NavTracer) Failure(op, path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("nav.failure", map[string]interface{}{"op": op, "path": path, "error": err.Error()})
}

func (NavTracer) Rollback(path string) {
	logging.Trace("nav.rollback", map[string]interface{}{"path": path})
}

func (NavTracer) Exit(key string) {
	logging.Trace("nav.exit", map[string]interface{}{"key": key})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) Disconnected(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("ui.disconnected", payload)
}
