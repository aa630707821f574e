package events

import "github.com/atomicstack/zkbrowse/internal/logging"

type MuxTracer struct{}

type BackendTracer struct{}

var (
	Mux     = MuxTracer{}
	Backend = BackendTracer{}
)

func (MuxTracer) ProducerStart(name string) {
	logging.Trace("mux.producer.start", map[string]interface{}{"producer": name})
}

func (MuxTracer) ProducerStop(name, reason string) {
	logging.Trace("mux.producer.stop", map[string]interface{}{"producer": name, "reason": reason})
}

func (MuxTracer) Key(key string) {
	logging.Trace("mux.key", map[string]interface{}{"key": key})
}

func (MuxTracer) DecodeSkip(raw []byte) {
	logging.Trace("mux.decode.skip", map[string]interface{}{"raw": string(raw)})
}

func (MuxTracer) Inject(message string, err error) {
	payload := map[string]interface{}{"message": message}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("mux.inject", payload)
}

func (BackendTracer) SourceStart(name, target string) {
	logging.Trace("backend.source.start", map[string]interface{}{"source": name, "target": target})
}

func (BackendTracer) SourceStop(name string, err error) {
	payload := map[string]interface{}{"source": name}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("backend.source.stop", payload)
}
