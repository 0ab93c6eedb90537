package format

import (
	"github.com/mkvkit/mkvstream/av/avutil"
	"github.com/mkvkit/mkvstream/format/mkv"
)

func RegisterAll() {
	avutil.Register(mkv.Handler)
}
