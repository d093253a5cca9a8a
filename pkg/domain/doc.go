// Package domain contains the core value types shared by the link cleaner:
// the static reference tables (tracking parameters and shortener domains) and
// the result of a cleaning run. They are free of infrastructure concerns so
// they can be passed between the engine, the API and the CLI.
package domain
