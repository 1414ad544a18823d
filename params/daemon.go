package params

type ListenerConfig struct {
	Network string
	Address string
}

type WebDaemonConfig struct {
	ListenerConfig
	DataDir   string
	IngestURL string
}

func DefaultWebListenerConfig() ListenerConfig {
	return ListenerConfig{
		Network: "tcp",
		Address: "localhost:3000",
	}
}

func DefaultWebDaemonConfig() *WebDaemonConfig {
	return &WebDaemonConfig{
		DataDir:        DatadirRoot,
		ListenerConfig: DefaultWebListenerConfig(),
		IngestURL:      DefaultIngestURL,
	}
}

func DefaultTestWebDaemonConfig() *WebDaemonConfig {
	return &WebDaemonConfig{
		DataDir: "",
		ListenerConfig: ListenerConfig{
			Network: "tcp",
			Address: "localhost:3333",
		},
		IngestURL: "",
	}
}
