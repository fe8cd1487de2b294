package main

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/deck/pkg/profile"
	"tableflip.dev/deck/pkg/runner/profiles"
	"tableflip.dev/deck/pkg/store"
)

// Seeds the configured store with the demo profile and prints it back.
func main() {
	p, err := store.Load(nil)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	if err := p.Save(ctx, profiles.Demo("demo", time.Now())); err != nil {
		panic(err)
	}

	back, err := p.Load(ctx, "demo")
	if err != nil {
		panic(err)
	}
	b, err := profile.Encode(back)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(b))
}
