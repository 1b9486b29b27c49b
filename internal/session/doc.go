/*
Package session owns one sorting board and at most one algorithm run on it.

A Session replaces the process-wide run state of a single-page visualizer:
starting a run cancels and joins the previous one, and every control the UI
offers (pause, single-step, log navigation, reset, clear, export) goes through
the session so that two sessions can run side by side without sharing state.
*/
package session
