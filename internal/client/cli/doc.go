// Package cli provides the interactive Asklee command-line client.
//
// NewApp opens the local session store and connects to the server; App.Run
// starts a REPL that reads commands from stdin until "exit" or EOF. Guests
// can browse (show, tags, tag, search, user); logged-in users can also ask,
// answer, edit, delete and vote. Passwords are read without echo.
package cli
