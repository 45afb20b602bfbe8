/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"hdxstems/internal/config"

	"github.com/chzyer/readline"
)

const (
	version_major = 1
	version_minor = 0
	app_name      = "HDX-Stems-Client"
)

func main() {
	socket := flag.String("socket", config.Load().Socket, "Path unix socket server")
	flag.Parse()

	fmt.Printf("\n%s V.%d.%d\n", app_name, version_major, version_minor)
	conn, err := net.Dial("unix", *socket)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect %s: %v\n", *socket, err)
		os.Exit(1)
	}
	defer conn.Close()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "stems> ",
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "QUIT",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Println("CONNECTED to", *socket)
	fmt.Println(`Type a command, TAB to complete, "QUIT" to exit`)

	// ============================
	// IPC → STDOUT
	// ============================
	go func() {
		sc := bufio.NewScanner(conn)
		sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
		for sc.Scan() {
			fmt.Fprintln(rl.Stdout(), "RECV:", sc.Text())
		}
		fmt.Fprintln(rl.Stdout(), "SOCKET CLOSED")
		rl.Close()
	}()

	// ============================
	// STDIN → IPC
	// ============================
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			// io.EOF on Ctrl-D
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "QUIT") {
			fmt.Println("Bye.")
			break
		}
		if _, err := conn.Write([]byte(line + "\n")); err != nil {
			fmt.Println("WRITE ERROR:", err)
			os.Exit(1)
		}
	}
}

func completer() *readline.PrefixCompleter {
	paths := readline.PcItemDynamic(listFiles)
	return readline.NewPrefixCompleter(
		readline.PcItem("PING"),
		readline.PcItem("ABOUT"),
		readline.PcItem("WHOAMI"),
		readline.PcItem("STATUS"),
		readline.PcItem("LOAD"),
		readline.PcItem("LOAD-DIR", paths),
		readline.PcItem("UNLOAD"),
		readline.PcItem("RESET"),
		readline.PcItem("PLAY"),
		readline.PcItem("PAUSE"),
		readline.PcItem("SEEK"),
		readline.PcItem("GAIN"),
		readline.PcItem("PAN"),
		readline.PcItem("MUTE"),
		readline.PcItem("SOLO"),
		readline.PcItem("UNSOLO"),
		readline.PcItem("MASTER"),
		readline.PcItem("WAVE"),
		readline.PcItem("KICKS"),
		readline.PcItem("SPECTRO"),
		readline.PcItem("QUIT"),
	)
}

// listFiles completes the path being typed after the command word.
func listFiles(line string) []string {
	fields := strings.Fields(line)
	typed := ""
	if len(fields) > 1 {
		typed = fields[len(fields)-1]
	}
	dir := filepath.Dir(typed)
	if typed == "" {
		dir = "."
	}
	entries, _ := os.ReadDir(dir)
	var names []string
	for _, e := range entries {
		name := filepath.Join(dir, e.Name())
		if e.IsDir() {
			name += string(filepath.Separator)
		}
		if strings.HasPrefix(name, typed) {
			names = append(names, name)
		}
	}
	return names
}
