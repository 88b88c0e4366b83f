// Package sign computes the message-authentication signatures the two
// signed API endpoint families expect as query parameters.
package sign

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Shared secret baked into the desktop client.
const secret = "kzqU4XhfCaY6B6JTHODeq5"

// Codecs and transports the file-info request asks for. The signature
// message embeds them joined without separators.
const (
	Codecs     = "flac,aac,he-aac,mp3"
	Transports = "raw"
	signSuffix = "flacaache-aacmp3raw"
)

func digest(msg string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(msg))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Lyrics signs a lyrics request: base64(HMAC-SHA256(trackID || ts)).
func Lyrics(ts, trackID string) string {
	return digest(trackID + ts)
}

// FileInfo signs a file-info request:
// base64(HMAC-SHA256(ts || trackID || quality || codecs+transports)) with
// the final base64 character stripped. The truncation is part of the
// protocol, not an encoding artifact.
func FileInfo(ts, trackID, quality string) string {
	d := digest(ts + trackID + quality + signSuffix)

	return d[:len(d)-1]
}
