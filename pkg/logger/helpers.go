package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Icons for pipeline milestones
const (
	IconSuccess = "✅"
	IconRefresh = "🔄"
	IconRocket  = "🚀"
	IconDot     = "•"
)

// Success logs a success message with a green checkmark
func Success(args ...interface{}) {
	defaultLogger.Info(IconSuccess + " " + fmt.Sprint(args...))
}

// Successf logs a formatted success message
func Successf(format string, args ...interface{}) {
	Success(fmt.Sprintf(format, args...))
}

// Progress logs a progress message with a refresh icon
func Progress(args ...interface{}) {
	defaultLogger.Info(IconRefresh + " " + fmt.Sprint(args...))
}

// Progressf logs a formatted progress message
func Progressf(format string, args ...interface{}) {
	Progress(fmt.Sprintf(format, args...))
}

// Submit logs a job submission message
func Submit(args ...interface{}) {
	defaultLogger.Info(IconRocket + " " + fmt.Sprint(args...))
}

// LogSection creates a visual section separator
func LogSection(title string) {
	line := strings.Repeat("=", 50)

	if l, ok := defaultLogger.(*logger); ok && !l.noColor {
		c := color.New(color.FgCyan)
		c.Println(line)
		c.Add(color.Bold).Println(title)
		c.Println(line)
	} else {
		fmt.Println(line)
		fmt.Println(title)
		fmt.Println(line)
	}
}

// LogKeyValue logs a key-value pair with nice formatting
func LogKeyValue(key string, value interface{}) {
	if l, ok := defaultLogger.(*logger); ok && !l.noColor {
		fmt.Printf("%s %v\n", color.CyanString(key+":"), value)
	} else {
		fmt.Printf("%s: %v\n", key, value)
	}
}

// LogList logs a list of items with bullets
func LogList(title string, items []string) {
	Info(title)
	for _, item := range items {
		fmt.Printf("  %s %s\n", IconDot, item)
	}
}
