package events

import "github.com/atomicstack/zkbrowse/internal/logging"

type GatewayTracer struct{}

var Gateway = GatewayTracer{}

func (GatewayTracer) Connect(store, target string) {
	logging.Trace("gateway.connect", map[string]interface{}{"store": store, "target": target})
}

func (GatewayTracer) Create(path string, size int) {
	logging.Trace("gateway.create", map[string]interface{}{"path": path, "bytes": size})
}

func (GatewayTracer) Bootstrap(root string, created bool) {
	logging.Trace("gateway.bootstrap", map[string]interface{}{"root": root, "created": created})
}

func (GatewayTracer) Session(state, eventType, path string) {
	logging.Trace("gateway.session", map[string]interface{}{"state": state, "type": eventType, "path": path})
}
