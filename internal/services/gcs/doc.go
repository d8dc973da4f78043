// Package gcs publishes rendered documents to Google Cloud Storage. Uploads
// are conditional on the object not existing yet, so publishing the same
// document twice is a no-op reported as ErrObjectExists.
package gcs
