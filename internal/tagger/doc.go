// Package tagger embeds the conversion tag map into an MP3 file as an
// ID3v2.3 tag.
//
// ID3v2.3 is written rather than v2.4 because it is the newest version most
// hardware players and car stereos read. v2.3 has no UTF-8 text encoding,
// so text frames use UTF-16 with a byte order mark.
//
// Tag keys map onto frames as follows:
//
//	title    TIT2
//	artist   TPE1
//	album    TALB
//	year     TYER
//	genre    TCON
//	comments COMM
package tagger
