// Package vertex implements the completion contract on top of Gemini models
// served by Vertex AI. Credentials come from the environment (application
// default credentials); only the project, location, and model are configured.
package vertex
