package production

// correctionRows tabla de factores de corrección del GLP entre 15.0 y 36.0 °C (paso 0.1).
// Columnas: temperatura (°C), factor líquido (t/m³ a restar a la densidad a 15 °C),
// factor vapor (t/m³ de fase gaseosa por bar absoluto).
var correctionRows = [...]struct{ t, liquid, vapor float64 }{
	{15.0, 0.000000, 0.002449},
	{15.1, 0.000100, 0.002448},
	{15.2, 0.000200, 0.002447},
	{15.3, 0.000300, 0.002446},
	{15.4, 0.000400, 0.002446},
	{15.5, 0.000500, 0.002445},
	{15.6, 0.000601, 0.002444},
	{15.7, 0.000701, 0.002443},
	{15.8, 0.000801, 0.002442},
	{15.9, 0.000902, 0.002441},
	{16.0, 0.001002, 0.002441},
	{16.1, 0.001102, 0.002440},
	{16.2, 0.001203, 0.002439},
	{16.3, 0.001303, 0.002438},
	{16.4, 0.001404, 0.002437},
	{16.5, 0.001504, 0.002436},
	{16.6, 0.001605, 0.002435},
	{16.7, 0.001706, 0.002435},
	{16.8, 0.001806, 0.002434},
	{16.9, 0.001907, 0.002433},
	{17.0, 0.002008, 0.002432},
	{17.1, 0.002109, 0.002431},
	{17.2, 0.002210, 0.002430},
	{17.3, 0.002311, 0.002430},
	{17.4, 0.002412, 0.002429},
	{17.5, 0.002512, 0.002428},
	{17.6, 0.002614, 0.002427},
	{17.7, 0.002715, 0.002426},
	{17.8, 0.002816, 0.002425},
	{17.9, 0.002917, 0.002425},
	{18.0, 0.003018, 0.002424},
	{18.1, 0.003119, 0.002423},
	{18.2, 0.003220, 0.002422},
	{18.3, 0.003322, 0.002421},
	{18.4, 0.003423, 0.002420},
	{18.5, 0.003524, 0.002420},
	{18.6, 0.003626, 0.002419},
	{18.7, 0.003727, 0.002418},
	{18.8, 0.003829, 0.002417},
	{18.9, 0.003930, 0.002416},
	{19.0, 0.004032, 0.002415},
	{19.1, 0.004134, 0.002415},
	{19.2, 0.004235, 0.002414},
	{19.3, 0.004337, 0.002413},
	{19.4, 0.004439, 0.002412},
	{19.5, 0.004541, 0.002411},
	{19.6, 0.004642, 0.002411},
	{19.7, 0.004744, 0.002410},
	{19.8, 0.004846, 0.002409},
	{19.9, 0.004948, 0.002408},
	{20.0, 0.005050, 0.002407},
	{20.1, 0.005152, 0.002406},
	{20.2, 0.005254, 0.002406},
	{20.3, 0.005356, 0.002405},
	{20.4, 0.005458, 0.002404},
	{20.5, 0.005560, 0.002403},
	{20.6, 0.005663, 0.002402},
	{20.7, 0.005765, 0.002401},
	{20.8, 0.005867, 0.002401},
	{20.9, 0.005970, 0.002400},
	{21.0, 0.006072, 0.002399},
	{21.1, 0.006174, 0.002398},
	{21.2, 0.006277, 0.002397},
	{21.3, 0.006379, 0.002397},
	{21.4, 0.006482, 0.002396},
	{21.5, 0.006585, 0.002395},
	{21.6, 0.006687, 0.002394},
	{21.7, 0.006790, 0.002393},
	{21.8, 0.006892, 0.002393},
	{21.9, 0.006995, 0.002392},
	{22.0, 0.007098, 0.002391},
	{22.1, 0.007201, 0.002390},
	{22.2, 0.007304, 0.002389},
	{22.3, 0.007407, 0.002388},
	{22.4, 0.007510, 0.002388},
	{22.5, 0.007612, 0.002387},
	{22.6, 0.007716, 0.002386},
	{22.7, 0.007819, 0.002385},
	{22.8, 0.007922, 0.002384},
	{22.9, 0.008025, 0.002384},
	{23.0, 0.008128, 0.002383},
	{23.1, 0.008231, 0.002382},
	{23.2, 0.008334, 0.002381},
	{23.3, 0.008438, 0.002380},
	{23.4, 0.008541, 0.002380},
	{23.5, 0.008645, 0.002379},
	{23.6, 0.008748, 0.002378},
	{23.7, 0.008851, 0.002377},
	{23.8, 0.008955, 0.002376},
	{23.9, 0.009058, 0.002376},
	{24.0, 0.009162, 0.002375},
	{24.1, 0.009266, 0.002374},
	{24.2, 0.009369, 0.002373},
	{24.3, 0.009473, 0.002372},
	{24.4, 0.009577, 0.002372},
	{24.5, 0.009680, 0.002371},
	{24.6, 0.009784, 0.002370},
	{24.7, 0.009888, 0.002369},
	{24.8, 0.009992, 0.002368},
	{24.9, 0.010096, 0.002368},
	{25.0, 0.010200, 0.002367},
	{25.1, 0.010304, 0.002366},
	{25.2, 0.010408, 0.002365},
	{25.3, 0.010512, 0.002364},
	{25.4, 0.010616, 0.002364},
	{25.5, 0.010721, 0.002363},
	{25.6, 0.010825, 0.002362},
	{25.7, 0.010929, 0.002361},
	{25.8, 0.011033, 0.002361},
	{25.9, 0.011138, 0.002360},
	{26.0, 0.011242, 0.002359},
	{26.1, 0.011346, 0.002358},
	{26.2, 0.011451, 0.002357},
	{26.3, 0.011555, 0.002357},
	{26.4, 0.011660, 0.002356},
	{26.5, 0.011765, 0.002355},
	{26.6, 0.011869, 0.002354},
	{26.7, 0.011974, 0.002353},
	{26.8, 0.012078, 0.002353},
	{26.9, 0.012183, 0.002352},
	{27.0, 0.012288, 0.002351},
	{27.1, 0.012393, 0.002350},
	{27.2, 0.012498, 0.002350},
	{27.3, 0.012603, 0.002349},
	{27.4, 0.012708, 0.002348},
	{27.5, 0.012813, 0.002347},
	{27.6, 0.012918, 0.002346},
	{27.7, 0.013023, 0.002346},
	{27.8, 0.013128, 0.002345},
	{27.9, 0.013233, 0.002344},
	{28.0, 0.013338, 0.002343},
	{28.1, 0.013443, 0.002343},
	{28.2, 0.013548, 0.002342},
	{28.3, 0.013654, 0.002341},
	{28.4, 0.013759, 0.002340},
	{28.5, 0.013865, 0.002339},
	{28.6, 0.013970, 0.002339},
	{28.7, 0.014075, 0.002338},
	{28.8, 0.014181, 0.002337},
	{28.9, 0.014286, 0.002336},
	{29.0, 0.014392, 0.002336},
	{29.1, 0.014498, 0.002335},
	{29.2, 0.014603, 0.002334},
	{29.3, 0.014709, 0.002333},
	{29.4, 0.014815, 0.002332},
	{29.5, 0.014921, 0.002332},
	{29.6, 0.015026, 0.002331},
	{29.7, 0.015132, 0.002330},
	{29.8, 0.015238, 0.002329},
	{29.9, 0.015344, 0.002329},
	{30.0, 0.015450, 0.002328},
	{30.1, 0.015556, 0.002327},
	{30.2, 0.015662, 0.002326},
	{30.3, 0.015768, 0.002326},
	{30.4, 0.015874, 0.002325},
	{30.5, 0.015981, 0.002324},
	{30.6, 0.016087, 0.002323},
	{30.7, 0.016193, 0.002322},
	{30.8, 0.016299, 0.002322},
	{30.9, 0.016406, 0.002321},
	{31.0, 0.016512, 0.002320},
	{31.1, 0.016618, 0.002319},
	{31.2, 0.016725, 0.002319},
	{31.3, 0.016831, 0.002318},
	{31.4, 0.016938, 0.002317},
	{31.5, 0.017045, 0.002316},
	{31.6, 0.017151, 0.002316},
	{31.7, 0.017258, 0.002315},
	{31.8, 0.017364, 0.002314},
	{31.9, 0.017471, 0.002313},
	{32.0, 0.017578, 0.002313},
	{32.1, 0.017685, 0.002312},
	{32.2, 0.017792, 0.002311},
	{32.3, 0.017899, 0.002310},
	{32.4, 0.018006, 0.002310},
	{32.5, 0.018113, 0.002309},
	{32.6, 0.018220, 0.002308},
	{32.7, 0.018327, 0.002307},
	{32.8, 0.018434, 0.002307},
	{32.9, 0.018541, 0.002306},
	{33.0, 0.018648, 0.002305},
	{33.1, 0.018755, 0.002304},
	{33.2, 0.018862, 0.002304},
	{33.3, 0.018970, 0.002303},
	{33.4, 0.019077, 0.002302},
	{33.5, 0.019185, 0.002301},
	{33.6, 0.019292, 0.002301},
	{33.7, 0.019399, 0.002300},
	{33.8, 0.019507, 0.002299},
	{33.9, 0.019614, 0.002298},
	{34.0, 0.019722, 0.002298},
	{34.1, 0.019830, 0.002297},
	{34.2, 0.019937, 0.002296},
	{34.3, 0.020045, 0.002295},
	{34.4, 0.020153, 0.002295},
	{34.5, 0.020261, 0.002294},
	{34.6, 0.020368, 0.002293},
	{34.7, 0.020476, 0.002292},
	{34.8, 0.020584, 0.002292},
	{34.9, 0.020692, 0.002291},
	{35.0, 0.020800, 0.002290},
	{35.1, 0.020908, 0.002289},
	{35.2, 0.021016, 0.002289},
	{35.3, 0.021124, 0.002288},
	{35.4, 0.021232, 0.002287},
	{35.5, 0.021341, 0.002286},
	{35.6, 0.021449, 0.002286},
	{35.7, 0.021557, 0.002285},
	{35.8, 0.021665, 0.002284},
	{35.9, 0.021774, 0.002283},
	{36.0, 0.021882, 0.002283},
}
