package wsraw

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/mkvkit/mkvstream/av"
	"github.com/mkvkit/mkvstream/reftime"
)

var Debug bool

// Muxer pushes block payloads over a websocket. Each sample goes out as a
// JSON text frame describing the block followed by a binary frame with the
// payload, so a browser client can schedule playback without parsing the
// container itself.
type Muxer struct {
	session string
	conn    net.Conn
}

type sampleHeader struct {
	Session       string `json:"session"`
	Track         int64  `json:"track"`
	Time          int64  `json:"time"`
	KeyFrame      bool   `json:"keyframe"`
	Discontinuity bool   `json:"discontinuity,omitempty"`
	Size          int    `json:"size"`
}

func NewMuxer(r *http.Request, w http.ResponseWriter) (*Muxer, error) {
	conn, _, _, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		return nil, err
	}
	m := &Muxer{
		session: uuid.NewString(),
		conn:    conn,
	}
	go func() {
		defer func() {
			conn.Close()
		}()
		for {
			if _, _, err := wsutil.NextReader(conn, ws.StateServerSide); err != nil {
				return
			}
		}
	}()
	if Debug {
		log.WithFields(log.Fields{
			"session": m.session,
			"remote":  conn.RemoteAddr(),
		}).Debug("wsraw: session open")
	}
	return m, nil
}

// Session returns the identifier sent with every sample header.
func (m *Muxer) Session() string { return m.session }

func (m *Muxer) WriteSample(s av.Sample) (err error) {
	hdr, err := json.Marshal(sampleHeader{
		Session:       m.session,
		Track:         s.TrackNumber,
		Time:          reftime.ToTicks(s.Time),
		KeyFrame:      s.IsKeyFrame,
		Discontinuity: s.Discontinuity,
		Size:          len(s.Data),
	})
	if err != nil {
		return
	}
	if err = wsutil.WriteServerText(m.conn, hdr); err != nil {
		return
	}
	return wsutil.WriteServerBinary(m.conn, s.Data)
}

func (m *Muxer) Close() (err error) {
	if Debug {
		log.WithField("session", m.session).Debug("wsraw: session close")
	}
	return m.conn.Close()
}
