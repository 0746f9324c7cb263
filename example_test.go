package localstore_test

import (
	"fmt"

	"github.com/localstore/localstore"
	"github.com/localstore/localstore/gomap"
)

type foo struct {
	Bar string
}

func Example() {
	s := localstore.New(gomap.NewStore(), localstore.DefaultOptions)
	defer s.Close()

	// Store, retrieve, print and remove a value
	if err := s.Set("foo123", foo{Bar: "baz"}); err != nil {
		panic(err)
	}
	retrievedVal := new(foo)
	found, err := s.GetInto("foo123", retrievedVal, localstore.GetOptions{})
	if err != nil {
		panic(err)
	}
	if !found {
		panic("Value not found")
	}
	fmt.Printf("foo: %+v\n", *retrievedVal)

	removed, err := s.Remove("foo123")
	if err != nil {
		panic(err)
	}
	fmt.Println("removed:", removed)

	// Output:
	// foo: {Bar:baz}
	// removed: true
}

func Example_undefined() {
	s := localstore.New(gomap.NewStore(), localstore.Options{})

	_, found, _ := s.Get("k", localstore.GetOptions{})
	fmt.Println(found)

	_ = s.Set("k", localstore.Undefined)
	v, found, _ := s.Get("k", localstore.GetOptions{Destroy: true})
	fmt.Println(v, found)

	exists, _ := s.Exists("k")
	fmt.Println(exists)

	// Output:
	// false
	// undefined true
	// false
}
