package openai

import "encoding/json"

const assistantSystemPrompt = "You are a helpful assistant."

const playlistSystemPrompt = "You are a helpful assistant specializing in creating playlists of songs."

// classifyPrompt asks for exactly one label out of a closed set. Anything the
// model returns outside that set is treated as out of scope downstream.
const classifyPrompt = "You MUST respond with one and only one of three responses: {'recs', 'favorite', 'no'}.\n" +
	"Does 'PROMPT IN QUESTION' listed below include the user specifically identifying an artist, band, person, or group as their favorite? " +
	"If it does, simply say 'favorite'.\n" +
	"Does 'PROMPT IN QUESTION' listed below have anything to do with asking for music recommendations or making a playlist? " +
	"If it does, simply say 'recs'.\n" +
	"If it does not, simply say 'no'.\n\n" +
	"PROMPT IN QUESTION: %q"

const favoriteArtistPrompt = "The 'PROMPT IN QUESTION' below includes mention of a favorite music artist pertaining to the user. " +
	"The favorite artist will be the name of an artist, band, person, or group. " +
	"You MUST simply respond with the Artist Name.\n" +
	"You will be penalized for responding with anything else besides strictly the Artist Name.\n" +
	"Make sure the Artist Name is returned with its correct spelling.\n\n" +
	"PROMPT IN QUESTION: %q"

const songListSuffix = "\nLimit this playlist to 10 songs. You will be penalized otherwise."

// playlistSchema constrains the structured-output completion to the shape the
// resolver consumes. additionalProperties must be false for strict mode.
var playlistSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"playlist": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"artist": {"type": "string"},
					"song_title": {"type": "string"}
				},
				"required": ["artist", "song_title"],
				"additionalProperties": false
			}
		}
	},
	"required": ["playlist"],
	"additionalProperties": false
}`)
