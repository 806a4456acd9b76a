// Command beanfall runs the coffee bean landing page demo and its tooling.
package main

func main() {
	Execute()
}
