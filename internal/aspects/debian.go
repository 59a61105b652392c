package aspects

// Debian is the base OS aspect the manager injects in front of every
// aspect list. It pins the base image and installs the packages every GUI
// container ends up needing.
type Debian struct {
	Base
}

func (Debian) Name() string { return "Debian" }

func (Debian) DockerfileSnippets() []DockerfileSnippet {
	return []DockerfileSnippet{
		{
			Order:   0,
			Content: "FROM debian:bookworm-slim",
		},
		{
			Order: 2,
			Content: `RUN apt-get update && apt-get install -y \
    --no-install-recommends \
    apt-transport-https \
    apt-utils \
    bzip2 \
    ca-certificates \
    curl \
    dirmngr \
    gnupg \
    locales \
    lsb-release \
    lsof \
    procps \
  && apt-get purge --autoremove \
  && rm -rf /var/lib/apt/lists/*`,
		},
		{
			Order: 3,
			Content: `# Useful language packs
RUN apt-get update && apt-get install -y --no-install-recommends \
  fonts-liberation \
  fonts-noto-cjk \
  fonts-noto-color-emoji \
  && rm -rf /var/lib/apt/lists/*`,
		},
	}
}
