// Package kernel provides the symmetric similarity functions the SVM is trained
// with.
//
// A Kernel must be symmetric: Eval(a, b) == Eval(b, a). The solver relies on
// this and does not check it.
//
// # Built-in Kernels
//
//   - Linear: a·b (enables the linear solver fast path)
//   - RBF: exp(-Gamma·|a-b|²)
//   - Polynomial: (Gamma·a·b + Coef0)^Degree
//   - Sigmoid: tanh(Gamma·a·b + Coef0)
//
// Custom kernels are plain functions wrapped in Func. Built-in kernels describe
// themselves with a Spec so trained models can be persisted; Func kernels cannot.
//
//	k := kernel.RBF{Gamma: 4}
//	spec, _ := kernel.SpecOf(k)      // {Name: "rbf", Gamma: 4}
//	k2, _ := kernel.FromSpec(spec)    // kernel.RBF{Gamma: 4}
package kernel
