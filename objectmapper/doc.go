// Package objectmapper maps between map[string]interface{} and Go structs.
//
// Fields are discovered either from explicit registrations (ManualDiscoverer, Describer)
// or with reflection (StructDiscoverer). Every field value is converted with a convbus.Bus,
// so loading accepts any value the bus can convert and saving reduces values to canonical types.
//
//	factory := objectmapper.NewFactory()
//	people, err := objectmapper.For[Person](factory)
//	person, err := people.Load(map[string]interface{}{"name": "Bob", "age": "42"})
//	values, err := people.Save(person)
package objectmapper
