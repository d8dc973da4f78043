// Package export writes query history to spreadsheet workbooks.
package export
